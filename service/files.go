package service

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"unicode/utf8"

	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrMalformedScores is returned when a score file is not a JSON object.
var ErrMalformedScores = errors.New("malformed scores file")

// ErrInvalidText is returned for text files that are neither UTF-8 nor
// UTF-16 with a byte order mark.
var ErrInvalidText = errors.New("text file is not valid UTF-8")

// readText decodes a text file as UTF-8. A byte order mark is dropped, and
// UTF-16 files carrying one are transcoded.
func readText(fsys afero.Fs, path string) (string, error) {
	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return "", err
	}

	utf16 := bytes.HasPrefix(raw, []byte{0xfe, 0xff}) || bytes.HasPrefix(raw, []byte{0xff, 0xfe})
	if !utf16 && !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: %s", ErrInvalidText, path)
	}

	b, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

// readScores loads a JSON object from path. A missing file yields an empty
// document.
func readScores(fsys afero.Fs, path string) (bson.D, error) {
	ok, err := isRegular(fsys, path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return bson.D{}, nil
	}

	b, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}

	scores, err := parseScores(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedScores, path, err)
	}
	return scores, nil
}

func isDir(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

func isRegular(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
