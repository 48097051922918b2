package storage

import "strings"

// NormalizePath canonicalizes a forward-slash path relative to the adapter
// root. Leading and trailing slashes and empty or "." segments are dropped,
// and ".." segments are resolved in place. The empty string is the root.
//
// Paths are treated as opaque bytes otherwise: brackets, braces and spaces
// pass through unaltered and are never interpreted as pattern syntax.
//
// Returns ErrInvalidPath when the path would escape the root.
func NormalizePath(p string) (string, error) {
	if p == "" || p == "/" || p == "." {
		return "", nil
	}

	var parts []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
			// Collapse duplicate separators and self references
		case "..":
			if len(parts) == 0 {
				return "", ErrInvalidPath
			}
			parts = parts[:len(parts)-1]
		default:
			parts = append(parts, seg)
		}
	}

	return strings.Join(parts, "/"), nil
}

// ParentPath returns the parent of a normalized path, or the empty string
// (the root) when the path has no parent.
func ParentPath(p string) string {
	idx := strings.LastIndexByte(p, '/')
	if idx < 0 {
		return ""
	}
	return p[:idx]
}

// BaseName returns the final segment of a normalized path.
func BaseName(p string) string {
	idx := strings.LastIndexByte(p, '/')
	if idx < 0 {
		return p
	}
	return p[idx+1:]
}

// IsChildOf reports whether child is an immediate child of dir.
// Both paths must be normalized; the empty string denotes the root.
func IsChildOf(dir, child string) bool {
	if !IsDescendantOf(dir, child) {
		return false
	}
	rest := child
	if dir != "" {
		rest = child[len(dir)+1:]
	}
	return !strings.ContainsRune(rest, '/')
}

// IsDescendantOf reports whether child lives anywhere beneath dir.
func IsDescendantOf(dir, child string) bool {
	if child == "" || child == dir {
		return false
	}
	if dir == "" {
		return true
	}
	return strings.HasPrefix(child, dir+"/")
}
