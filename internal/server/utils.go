package server

import (
	"errors"
	"path"
	"strings"
)

var errInvalidPath = errors.New("invalid path")

// validatePath turns a decoded URL path into a rooted, cleaned name and
// rejects anything that could step outside the root directory.
func validatePath(urlPath string) (string, error) {
	if strings.ContainsAny(urlPath, "\x00\\") {
		return "", errInvalidPath
	}

	// Reject ".." segments outright rather than letting Clean absorb them
	for _, segment := range strings.Split(urlPath, "/") {
		if segment == ".." {
			return "", errInvalidPath
		}
	}

	return normalizeRequestPath(urlPath), nil
}

// normalizeRequestPath always yields an absolute slash path, "/" for empty input.
func normalizeRequestPath(rawPath string) string {
	if !strings.HasPrefix(rawPath, "/") {
		rawPath = "/" + rawPath
	}
	return path.Clean(rawPath)
}
