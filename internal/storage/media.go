package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aps-academy/admin-service/internal/utils"
)

// AllowedExtensions are the media types accepted for upload
var AllowedExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".mp4", ".mkv"}

// ValidateExtension rejects files whose extension is not allowed
func ValidateExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return utils.BadInput("Invalid file type. Allowed types: %s", strings.Join(AllowedExtensions, ", "))
}

// ObjectKey builds "<folder>/<unix-ms>_<name>" with the name reduced to a
// safe base name.
func ObjectKey(folder, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%d_%s", folder, now.UnixMilli(), sanitizeName(filename))
}

func sanitizeName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, base)
	if base == "" || base == "." {
		return "file"
	}
	return base
}
