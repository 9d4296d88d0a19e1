package backup

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrSourceMissing is returned by CreateArchive when the source path does not
// exist. Callers treat this as a skip, not a failure.
var ErrSourceMissing = errors.New("source path does not exist")

// CreateArchive writes a gzipped tarball of source (a directory or a single
// file) to dest. Entries are stored relative to the parent of source so that
// extraction under $HOME recreates the original layout.
func CreateArchive(source, dest string) (int64, error) {
	info, err := os.Lstat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrSourceMissing
		}
		return 0, fmt.Errorf("failed to stat %s: %w", source, err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	gw := gzip.NewWriter(out)
	tw := tar.NewWriter(gw)

	base := filepath.Base(source)
	if info.IsDir() {
		err = filepath.WalkDir(source, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			rel, relErr := filepath.Rel(source, path)
			if relErr != nil {
				return relErr
			}
			name := base
			if rel != "." {
				name = filepath.Join(base, rel)
			}
			return writeEntry(tw, path, name)
		})
	} else {
		err = writeEntry(tw, source, base)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to archive %s: %w", source, err)
	}

	if err := tw.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize tar: %w", err)
	}
	if err := gw.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize gzip: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("failed to close archive: %w", err)
	}

	st, err := os.Stat(dest)
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}

// writeEntry writes one filesystem entry to the tar stream. Irregular files
// (sockets, devices) are skipped.
func writeEntry(tw *tar.Writer, path, name string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}

	var link string
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		link, err = os.Readlink(path)
		if err != nil {
			return err
		}
	case !info.Mode().IsRegular() && !info.IsDir():
		return nil
	}

	hdr, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	hdr.Name = filepath.ToSlash(name)
	if info.IsDir() {
		hdr.Name += "/"
	}

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(tw, f)
	return err
}

// ExtractArchive unpacks a gzipped tarball into targetDir. Entry paths are
// validated so a crafted archive cannot write outside targetDir.
func ExtractArchive(archivePath, targetDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to read gzip stream: %w", err)
	}
	defer gr.Close()

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return fmt.Errorf("failed to create extraction directory: %w", err)
	}
	root, err := filepath.EvalSymlinks(targetDir)
	if err != nil {
		return fmt.Errorf("failed to resolve extraction directory: %w", err)
	}

	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar entry: %w", err)
		}

		target, err := safeJoin(targetDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode)); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			if err := ensureWithin(root, target); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("failed to create parent directory: %w", err)
			}
			if err := ensureWithin(root, filepath.Dir(target)); err != nil {
				return err
			}
			// Never write through a pre-existing symlink; replace it
			if info, err := os.Lstat(target); err == nil && info.Mode()&os.ModeSymlink != 0 {
				_ = os.Remove(target)
			}
			if err := writeFile(target, tr, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("failed to create parent directory: %w", err)
			}
			if err := ensureWithin(root, filepath.Dir(target)); err != nil {
				return err
			}
			// Replace any existing link; restores are idempotent
			_ = os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return fmt.Errorf("failed to create symlink %s: %w", target, err)
			}
		default:
			// Hard links, fifos etc. are not produced by CreateArchive
			continue
		}
	}
}

// ensureWithin rejects a path whose symlink-resolved location escapes root.
// safeJoin validates entry names lexically; this catches archives that plant
// a symlink and then write through it.
func ensureWithin(root, path string) error {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if resolved != root && !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return fmt.Errorf("archive entry %q escapes extraction directory", path)
	}
	return nil
}

// safeJoin joins an archive entry name onto dir, rejecting absolute names and
// parent traversal.
func safeJoin(dir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %q escapes extraction directory", name)
	}
	return filepath.Join(dir, cleaned), nil
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file %s: %w", target, err)
	}
	return f.Close()
}
