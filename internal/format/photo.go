package format

import "strings"

// DefaultStoragePrefix is where relative avatar paths are served from.
const DefaultStoragePrefix = "/storage"

// PhotoURL turns a stored avatar path into a URL. Absolute URLs and rooted paths are
// returned unchanged; anything else is placed under prefix.
func PhotoURL(path, prefix string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "/") {
		return path
	}
	if prefix == "" {
		prefix = DefaultStoragePrefix
	}
	return strings.TrimRight(prefix, "/") + "/" + path
}
