// Package detect decides whether a directory holds a project of a given kind.
package detect

import (
	"errors"
	"strings"
)

// ErrDetectionUnavailable is returned when a directory listing cannot be read.
// Callers treat it as a non-match.
var ErrDetectionUnavailable = errors.New("detection unavailable")

// Entry is a single name from a directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// DetectionSpec lists the signals that identify a project.
type DetectionSpec struct {
	Extensions []string
	Files      []string
	Folders    []string
}

// Empty reports whether s has no signals. An empty DetectionSpec never matches.
func (s DetectionSpec) Empty() bool {
	return len(s.Extensions) == 0 && len(s.Files) == 0 && len(s.Folders) == 0
}

// Matches reports whether any entry satisfies any signal of spec.
//
// A file matches on its full name or on any of its extensions, so
// "archive.tar.gz" matches both "gz" and "tar.gz". A directory matches on its
// name. Scanning stops at the first hit.
func Matches(entries []Entry, spec DetectionSpec) bool {
	if spec.Empty() {
		return false
	}

	extensions := toSet(spec.Extensions)
	files := toSet(spec.Files)
	folders := toSet(spec.Folders)

	for _, entry := range entries {
		if entry.IsDir {
			if _, ok := folders[entry.Name]; ok {
				return true
			}
			continue
		}
		if _, ok := files[entry.Name]; ok {
			return true
		}
		if matchesExtension(entry.Name, extensions) {
			return true
		}
	}
	return false
}

func matchesExtension(name string, extensions map[string]struct{}) bool {
	if len(extensions) == 0 {
		return false
	}
	// A leading dot marks a hidden file, not an extension.
	rest := strings.TrimPrefix(name, ".")
	for {
		idx := strings.Index(rest, ".")
		if idx < 0 {
			return false
		}
		rest = rest[idx+1:]
		if _, ok := extensions[rest]; ok {
			return true
		}
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
