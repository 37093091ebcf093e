package utils

import (
	"regexp"
	"strings"
)

var invalidFolderChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFolderName rewrites a label name into a single safe path
// component. Characters that are invalid on common filesystems become
// underscores, and leading/trailing dots and spaces are trimmed. A name
// that sanitizes to nothing becomes "Unknown".
func SanitizeFolderName(name string) string {
	name = invalidFolderChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, ". ")
	if name == "" {
		return "Unknown"
	}
	return name
}
