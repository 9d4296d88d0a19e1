package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// DefaultChunkThreshold is the archive size above which archives are split
// into parts, chosen to stay under common upload caps (e.g. a 100 MB
// code-hosting file limit).
const DefaultChunkThreshold int64 = 90 * 1024 * 1024

// partRe matches chunk part files: <archive>.partNNN.
var partRe = regexp.MustCompile(`^(.+)\.part(\d{3})$`)

// PartName returns the name of the n-th part (1-based) of an archive.
func PartName(archivePath string, n int) string {
	return fmt.Sprintf("%s.part%03d", archivePath, n)
}

// Split splits the file at archivePath into parts no larger than chunkSize
// and removes the original. Returns the part paths in order.
func Split(archivePath string, chunkSize int64) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}

	in, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive for splitting: %w", err)
	}
	defer in.Close()

	var parts []string
	for n := 1; ; n++ {
		partPath := PartName(archivePath, n)
		out, err := os.Create(partPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create part %s: %w", partPath, err)
		}

		written, err := io.CopyN(out, in, chunkSize)
		closeErr := out.Close()
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to write part %s: %w", partPath, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("failed to close part %s: %w", partPath, closeErr)
		}

		if written == 0 {
			// Archive size was an exact multiple of chunkSize
			if rmErr := os.Remove(partPath); rmErr != nil {
				return nil, rmErr
			}
			break
		}
		parts = append(parts, partPath)
		if err == io.EOF {
			break
		}
	}

	if err := os.Remove(archivePath); err != nil {
		return nil, fmt.Errorf("failed to remove original archive after split: %w", err)
	}
	return parts, nil
}

// Merge concatenates the parts of archivePath back into archivePath.
// Parts are left in place; the caller removes them once done.
func Merge(archivePath string) error {
	parts, err := ListParts(archivePath)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("no parts found for %s", archivePath)
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create merged archive: %w", err)
	}
	defer out.Close()

	var want int64
	for _, part := range parts {
		in, err := os.Open(part)
		if err != nil {
			return fmt.Errorf("failed to open part %s: %w", part, err)
		}
		n, err := io.Copy(out, in)
		in.Close()
		if err != nil {
			return fmt.Errorf("failed to append part %s: %w", part, err)
		}
		want += n
	}
	if err := out.Close(); err != nil {
		return err
	}

	st, err := os.Stat(archivePath)
	if err != nil {
		return err
	}
	if st.Size() != want {
		return fmt.Errorf("merged archive is %d bytes, expected %d", st.Size(), want)
	}
	return nil
}

// IsChunked reports whether archivePath exists as parts rather than a single
// file.
func IsChunked(archivePath string) bool {
	if _, err := os.Stat(archivePath); err == nil {
		return false
	}
	parts, err := ListParts(archivePath)
	return err == nil && len(parts) > 0
}

// ListParts returns the part files of archivePath in part order. Part numbers
// are zero-padded to three digits so lexical order equals numeric order, but
// we sort explicitly anyway.
func ListParts(archivePath string) ([]string, error) {
	dir := filepath.Dir(archivePath)
	base := filepath.Base(archivePath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}

	var parts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := partRe.FindStringSubmatch(entry.Name())
		if m == nil || m[1] != base {
			continue
		}
		parts = append(parts, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(parts)
	return parts, nil
}

// RemoveParts deletes the part files of archivePath.
func RemoveParts(archivePath string) error {
	parts, err := ListParts(archivePath)
	if err != nil {
		return err
	}
	for _, part := range parts {
		if err := os.Remove(part); err != nil {
			return fmt.Errorf("failed to remove part %s: %w", part, err)
		}
	}
	return nil
}
