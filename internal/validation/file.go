package validation

import (
	"fmt"
	"strings"

	"github.com/orgdrive/orgdrive/internal/model"
)

// ValidateFileName validates a display name for a file record
func ValidateFileName(name string, maxLen int) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return fmt.Errorf("name is required")
	}

	if len(trimmed) > maxLen {
		return fmt.Errorf("name is too long (max %d characters)", maxLen)
	}

	return nil
}

// ValidateFileType validates the declared type tag. The tag is taken at
// face value; content is never sniffed.
func ValidateFileType(fileType string) error {
	if !model.ValidFileType(fileType) {
		return fmt.Errorf("invalid file type %q (want image, csv or pdf)", fileType)
	}
	return nil
}
