package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/orgdrive/orgdrive/internal/apperr"
	"github.com/orgdrive/orgdrive/internal/repository"
)

// Sweeper converts marked-for-deletion files into purged files. It runs on
// its own schedule, independent of request handling, and only ever touches
// records already flagged by a user.
type Sweeper struct {
	files    repository.FileRepository
	fileSvc  *FileService
	interval time.Duration
	pageSize int
	maxPages int
}

func NewSweeper(files repository.FileRepository, fileSvc *FileService, interval time.Duration, pageSize, maxPages int) *Sweeper {
	return &Sweeper{
		files:    files,
		fileSvc:  fileSvc,
		interval: interval,
		pageSize: pageSize,
		maxPages: maxPages,
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	s.sweepAndLog(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.sweepAndLog(ctx)
		}
	}
}

func (s *Sweeper) sweepAndLog(ctx context.Context) {
	purged, err := s.Sweep(ctx)
	if err != nil {
		slog.Error("sweep failed", "error", err)
		return
	}
	if purged > 0 {
		slog.Info("sweep completed", "purged", purged)
	}
}

// Sweep pages through files marked for deletion and purges each one. The
// scan is keyset-paginated and capped at maxPages per run, so a large
// backlog spills into the next run instead of monopolizing this one. One
// file's failure never blocks the rest of its page: the purge itself
// re-checks the deletion flag atomically, so a file restored after being
// selected is simply skipped.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	var (
		purged       int
		afterCreated time.Time
		afterID      string
	)

	for page := 0; page < s.maxPages; page++ {
		files, err := s.files.MarkedPage(afterCreated, afterID, s.pageSize)
		if err != nil {
			return purged, err
		}
		if len(files) == 0 {
			break
		}

		for _, file := range files {
			if ctx.Err() != nil {
				return purged, ctx.Err()
			}

			err := s.fileSvc.Purge(ctx, file.ID)
			switch {
			case errors.Is(err, apperr.ErrNotFound):
				// restored or purged concurrently; already satisfied
				slog.Debug("skipping file no longer purgeable", "file_id", file.ID)
			case err != nil:
				// retried on the next scheduled pass
				slog.Warn("purge failed, will retry next sweep", "file_id", file.ID, "error", err)
			default:
				purged++
			}
		}

		last := files[len(files)-1]
		afterCreated, afterID = last.CreatedAt, last.ID

		if len(files) < s.pageSize {
			break
		}
	}

	return purged, nil
}
