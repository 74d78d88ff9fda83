package main

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandMissingDataDirExitsCleanly(t *testing.T) {
	t.Setenv("DREAM_MONGODB_URI", "mongodb://127.0.0.1:1")

	var out bytes.Buffer
	cmd := newCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--data-dir", filepath.Join(t.TempDir(), "absent")})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Data directory not found")
}

func TestCommandRejectsArguments(t *testing.T) {
	cmd := newCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	assert.Error(t, cmd.Execute())
}

func TestCommandInvalidLogLevel(t *testing.T) {
	cmd := newCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-level", "loud", "--data-dir", t.TempDir()})

	assert.Error(t, cmd.Execute())
}

type deniedFs struct {
	afero.Fs
}

func (deniedFs) Stat(name string) (os.FileInfo, error) {
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrPermission}
}

func TestDataDirExists(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/data", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/file", []byte("x"), 0o644))

	ok, err := dataDirExists(fsys, "/data")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = dataDirExists(fsys, "/missing")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = dataDirExists(fsys, "/file")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDataDirExistsReturnsStatErrors(t *testing.T) {
	ok, err := dataDirExists(deniedFs{afero.NewMemMapFs()}, "/data")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.False(t, ok)
}
