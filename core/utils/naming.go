package utils

import (
	"path"
	"strings"
)

// ComponentName turns a file path relative to its category directory into
// the name it is registered under: slashes normalized, extension dropped.
// "admin/UserController.js" becomes "admin/UserController".
func ComponentName(rel string) string {
	rel = strings.ReplaceAll(rel, "\\", "/")
	rel = strings.TrimPrefix(rel, "/")
	return strings.TrimSuffix(rel, path.Ext(rel))
}

// IsHidden reports whether any segment of the path starts with a dot.
func IsHidden(rel string) bool {
	for _, seg := range strings.Split(strings.ReplaceAll(rel, "\\", "/"), "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}
	return false
}
