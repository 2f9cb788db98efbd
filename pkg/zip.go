package boo

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ArchiveName returns the file name used when packaging p at intVersion.
func ArchiveName(p Plugin, intVersion int) string {
	return fmt.Sprintf("%s-%d.zip", p.Name(), intVersion)
}

// Zip writes a deflated archive of srcDir to dest. Entry names are prefixed
// with the base name of srcDir.
func Zip(srcDir, dest string) (err error) {
	srcDir, err = filepath.Abs(srcDir)
	if err != nil {
		return wrapError(CodeIO, err, "failed to resolve %q", srcDir)
	}
	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return wrapError(CodeIO, err, "failed to resolve %q", dest)
	}
	base := filepath.Base(srcDir)

	out, err := os.Create(destAbs)
	if err != nil {
		return wrapError(CodeIO, err, "failed to create archive %s", dest)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = wrapError(CodeIO, cerr, "failed to close archive %s", dest)
		}
	}()

	zw := zip.NewWriter(out)
	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == destAbs {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		return addToZip(zw, path, filepath.ToSlash(filepath.Join(base, rel)))
	})
	if walkErr != nil {
		zw.Close()
		return wrapError(CodeIO, walkErr, "failed to archive %s", srcDir)
	}
	if err := zw.Close(); err != nil {
		return wrapError(CodeIO, err, "failed to finish archive %s", dest)
	}
	return nil
}

func addToZip(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
