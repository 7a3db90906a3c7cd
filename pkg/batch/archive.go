package batch

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"

	errs "github.com/matzehuels/bugmaker/pkg/errors"
)

// ArchiveName returns the zip file name for a run id.
func ArchiveName(id string) string {
	return "bugs-" + id + ".zip"
}

// writeArchive zips every written item into dir. Failed items are skipped.
func writeArchive(dir string, res *Result) (path string, err error) {
	path = filepath.Join(dir, ArchiveName(res.ID))
	f, err := os.Create(path)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInternal, err, "create archive")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errs.Wrap(errs.ErrCodeInternal, cerr, "close archive")
		}
		if err != nil {
			os.Remove(path)
			path = ""
		}
	}()

	zw := zip.NewWriter(f)
	for _, it := range res.Succeeded() {
		if err := addFile(zw, it.Path); err != nil {
			return "", err
		}
	}
	if err := zw.Close(); err != nil {
		return "", errs.Wrap(errs.ErrCodeInternal, err, "finish archive")
	}
	return path, nil
}

func addFile(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "archive %s", path)
	}
	defer src.Close()

	w, err := zw.Create(filepath.Base(path))
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "archive %s", path)
	}
	if _, err := io.Copy(w, src); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "archive %s", path)
	}
	return nil
}
