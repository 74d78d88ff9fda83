package service

import (
	"strings"

	"github.com/joeyave/dream-integration/helpers"
	"golang.org/x/exp/slices"
)

type fileKind int

const (
	otherFile fileKind = iota
	imageFile
	audioFile
	transcriptFile
	clipFile
	descriptionFile
)

func (k fileKind) String() string {
	switch k {
	case imageFile:
		return "image"
	case audioFile:
		return "audio"
	case transcriptFile:
		return "transcript"
	case clipFile:
		return "clip"
	case descriptionFile:
		return "description"
	default:
		return "other"
	}
}

// classifyFile decides what a file inside a sample folder holds. Extensions
// match case-insensitively, name prefixes are case-sensitive.
func classifyFile(name string) fileKind {
	stem, ext := splitExt(name)
	ext = strings.ToLower(ext)

	switch {
	case slices.Contains(helpers.ImageExtensions, ext):
		return imageFile
	case slices.Contains(helpers.AudioExtensions, ext):
		return audioFile
	case ext != helpers.TextExtension:
		return otherFile
	case strings.HasPrefix(stem, helpers.TranscriptPrefix):
		return transcriptFile
	case strings.HasPrefix(stem, helpers.ClipPrefix):
		return clipFile
	case strings.HasPrefix(stem, helpers.DescriptionPrefix):
		return descriptionFile
	default:
		return otherFile
	}
}

// splitExt splits name into stem and extension at the last dot. Leading dots
// belong to the stem, so ".txt" has no extension and ".notes.txt" has ".txt".
func splitExt(name string) (string, string) {
	lead := len(name) - len(strings.TrimLeft(name, "."))

	i := strings.LastIndexByte(name, '.')
	if i < lead {
		return name, ""
	}
	return name[:i], name[i:]
}
