package media

import "strings"

// ExtensionSet is a membership table of lowercase dotted file extensions.
type ExtensionSet map[string]struct{}

// NewExtensionSet normalizes the given extensions (lowercased, leading dot
// enforced) into a set. Empty entries are dropped.
func NewExtensionSet(extensions []string) ExtensionSet {
	set := make(ExtensionSet, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// Contains reports whether the extension is a member. The input may be
// given with or without the leading dot.
func (s ExtensionSet) Contains(ext string) bool {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return false
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	_, ok := s[ext]
	return ok
}

// DefaultVideoExtensions returns the built-in video extension table.
func DefaultVideoExtensions() []string {
	return []string{
		".3gp", ".avi", ".flv", ".m4v", ".mkv", ".mov", ".mp4", ".mpeg",
		".mpg", ".mxf", ".ogv", ".webm", ".wmv",
	}
}

// DefaultImageExtensions returns the built-in image extension table.
func DefaultImageExtensions() []string {
	return []string{
		".bmp", ".dpx", ".exr", ".gif", ".hdr", ".jpeg", ".jpg", ".png",
		".psd", ".sgi", ".tga", ".tif", ".tiff", ".webp",
	}
}
