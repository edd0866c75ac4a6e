package archive

import (
	"path"
	"strings"
)

// Kind classifies an entry by file extension.
type Kind int

const (
	KindOther Kind = iota
	KindImage
	KindVideo
	KindJSON
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".webp": true, ".heic": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".wmv": true,
	".m4v": true, ".mpg": true, ".mpeg": true,
}

// Classify returns the kind of an entry name. Only the extension is
// inspected, case-insensitively.
func Classify(name string) Kind {
	ext := strings.ToLower(path.Ext(name))
	switch {
	case imageExts[ext]:
		return KindImage
	case videoExts[ext]:
		return KindVideo
	case ext == ".json":
		return KindJSON
	default:
		return KindOther
	}
}

func IsImage(name string) bool { return Classify(name) == KindImage }
func IsVideo(name string) bool { return Classify(name) == KindVideo }

// IsMedia reports whether the entry has an image or video extension.
func IsMedia(name string) bool {
	k := Classify(name)
	return k == KindImage || k == KindVideo
}
