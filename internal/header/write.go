package header

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"protogen/internal/protocol"
)

// WriteFile writes h to path, replacing any previous content. The text goes to
// a temp file in the same directory first and is renamed into place, so a
// failed write leaves the previous header untouched. A symlinked output is
// followed and an existing file keeps its mode. The destination directory
// must already exist. Concurrent writers are last-writer-wins.
func WriteFile(path string, h *Header) (int, error) {
	data := h.Bytes()

	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}
	dir := filepath.Dir(target)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return 0, writeErr(path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return 0, writeErr(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, writeErr(path, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return 0, writeErr(path, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return 0, writeErr(path, err)
	}
	return len(data), nil
}

// UpToDate reports whether the file at path already holds exactly h. A missing
// file is reported as stale, not as an error.
func UpToDate(path string, h *Header) (bool, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &protocol.Error{Kind: protocol.ErrOutputWrite, Stage: "check", Value: path, Err: err}
	}
	return bytes.Equal(existing, h.Bytes()), nil
}

func writeErr(path string, err error) error {
	return &protocol.Error{Kind: protocol.ErrOutputWrite, Stage: "write", Value: path, Err: err}
}
