package backup

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates a small config-directory-like tree for archive tests.
func writeTree(t *testing.T, root string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "scripts"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "hyprland.conf"), []byte("monitor=,preferred,auto,1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "scripts", "startup.sh"), []byte("#!/bin/sh\n"), 0755))
	require.NoError(t, os.Symlink("hyprland.conf", filepath.Join(root, "current.conf")))
}

func TestCreateAndExtractArchive_Directory(t *testing.T) {
	tmp := t.TempDir()
	source := filepath.Join(tmp, "hypr")
	writeTree(t, source)

	archive := filepath.Join(tmp, "hypr.tar.gz")
	size, err := CreateArchive(source, archive)
	require.NoError(t, err)
	assert.Positive(t, size)

	target := filepath.Join(tmp, "restored")
	require.NoError(t, ExtractArchive(archive, target))

	// Layout is recreated under the archive base name
	data, err := os.ReadFile(filepath.Join(target, "hypr", "hyprland.conf"))
	require.NoError(t, err)
	assert.Equal(t, "monitor=,preferred,auto,1\n", string(data))

	info, err := os.Stat(filepath.Join(target, "hypr", "scripts", "startup.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	link, err := os.Readlink(filepath.Join(target, "hypr", "current.conf"))
	require.NoError(t, err)
	assert.Equal(t, "hyprland.conf", link)
}

func TestCreateArchive_SingleFile(t *testing.T) {
	tmp := t.TempDir()
	source := filepath.Join(tmp, "starship.toml")
	require.NoError(t, os.WriteFile(source, []byte("add_newline = false\n"), 0644))

	archive := filepath.Join(tmp, "starship.tar.gz")
	_, err := CreateArchive(source, archive)
	require.NoError(t, err)

	target := filepath.Join(tmp, "out")
	require.NoError(t, ExtractArchive(archive, target))

	data, err := os.ReadFile(filepath.Join(target, "starship.toml"))
	require.NoError(t, err)
	assert.Equal(t, "add_newline = false\n", string(data))
}

func TestCreateArchive_MissingSource(t *testing.T) {
	tmp := t.TempDir()
	_, err := CreateArchive(filepath.Join(tmp, "nope"), filepath.Join(tmp, "nope.tar.gz"))
	assert.ErrorIs(t, err, ErrSourceMissing)
}

func TestExtractArchive_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	source := filepath.Join(tmp, "kitty")
	writeTree(t, source)

	archive := filepath.Join(tmp, "kitty.tar.gz")
	_, err := CreateArchive(source, archive)
	require.NoError(t, err)

	target := filepath.Join(tmp, "home")
	require.NoError(t, ExtractArchive(archive, target))
	// Second extraction over existing files must succeed (restore over restore)
	require.NoError(t, ExtractArchive(archive, target))
}

func TestExtractArchive_RejectsWriteThroughSymlink(t *testing.T) {
	tmp := t.TempDir()
	outside := filepath.Join(tmp, "outside")
	require.NoError(t, os.MkdirAll(outside, 0755))

	// A symlink pointing out of the extraction directory, followed by a file
	// routed through it
	archive := filepath.Join(tmp, "evil.tar.gz")
	f, err := os.Create(archive)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "hypr/escape",
		Typeflag: tar.TypeSymlink,
		Linkname: outside,
		Mode:     0777,
	}))
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "hypr/escape/pwn.txt",
		Typeflag: tar.TypeReg,
		Mode:     0644,
		Size:     4,
	}))
	_, err = tw.Write([]byte("pwn\n"))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	target := filepath.Join(tmp, "restored")
	err = ExtractArchive(archive, target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes extraction directory")
	assert.NoFileExists(t, filepath.Join(outside, "pwn.txt"))
}

func TestExtractArchive_ReplacesSymlinkWithFile(t *testing.T) {
	tmp := t.TempDir()
	outside := filepath.Join(tmp, "victim.conf")
	require.NoError(t, os.WriteFile(outside, []byte("untouched\n"), 0644))

	// A regular-file entry whose target already exists as a symlink must
	// replace the link, not write through it
	archive := filepath.Join(tmp, "evil.tar.gz")
	f, err := os.Create(archive)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "kitty.conf",
		Typeflag: tar.TypeSymlink,
		Linkname: outside,
		Mode:     0777,
	}))
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "kitty.conf",
		Typeflag: tar.TypeReg,
		Mode:     0644,
		Size:     4,
	}))
	_, err = tw.Write([]byte("pwn\n"))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	target := filepath.Join(tmp, "restored")
	require.NoError(t, ExtractArchive(archive, target))

	data, err := os.ReadFile(outside)
	require.NoError(t, err)
	assert.Equal(t, "untouched\n", string(data))

	info, err := os.Lstat(filepath.Join(target, "kitty.conf"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
}

func TestSafeJoin_RejectsTraversal(t *testing.T) {
	_, err := safeJoin("/tmp/x", "../../etc/passwd")
	assert.Error(t, err)

	_, err = safeJoin("/tmp/x", "/etc/passwd")
	assert.Error(t, err)

	path, err := safeJoin("/tmp/x", "hypr/hyprland.conf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/x", "hypr", "hyprland.conf"), path)
}
