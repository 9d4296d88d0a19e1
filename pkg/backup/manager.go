package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// TimestampLayout names backup folders: YYYYMMDD_HHMMSS.
const TimestampLayout = "20060102_150405"

var (
	// ErrNoBackups is returned when the data directory holds no backup folders.
	ErrNoBackups = errors.New("no backups found")
	// ErrBackupNotFound is returned when a named backup folder does not exist.
	ErrBackupNotFound = errors.New("backup not found")
)

// Manager orchestrates backup and restore runs against a data directory.
type Manager struct {
	dataDir        string
	home           string
	items          *Items
	chunkThreshold int64

	// now is overridable in tests so folder names are deterministic.
	now func() time.Time
}

// NewManager creates a Manager. The home directory is the archive source on
// backup and the extraction target on restore.
func NewManager(dataDir string, items *Items) (*Manager, error) {
	home, err := homeDir()
	if err != nil {
		return nil, err
	}
	return &Manager{
		dataDir:        dataDir,
		home:           home,
		items:          items,
		chunkThreshold: DefaultChunkThreshold,
		now:            time.Now,
	}, nil
}

// SetHome overrides the home directory (restore --target, tests).
func (m *Manager) SetHome(home string) {
	m.home = home
}

// SetChunkThreshold overrides the split threshold. Zero resets the default.
func (m *Manager) SetChunkThreshold(n int64) {
	if n <= 0 {
		n = DefaultChunkThreshold
	}
	m.chunkThreshold = n
}

// DataDir returns the backup data directory.
func (m *Manager) DataDir() string {
	return m.dataDir
}

// Items returns the configured item set.
func (m *Manager) Items() *Items {
	return m.items
}

// Backup archives the selected items (all when names is empty) into a new
// timestamped folder. A missing source is a skip; a failing item is recorded
// and the run continues. Returns the manifest and the folder path.
func (m *Manager) Backup(ctx context.Context, names []string, progress ProgressCallback) (*Manifest, string, error) {
	if progress == nil {
		progress = NoOpProgress
	}

	selected, err := m.items.Select(names)
	if err != nil {
		return nil, "", err
	}

	folder := filepath.Join(m.dataDir, m.now().Format(TimestampLayout))
	progress(NewProgressEvent(StagePreparing, "", fmt.Sprintf("Creating %s", folder), 0))
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create backup folder: %w", err)
	}

	manifest := NewManifest()
	total := len(selected)
	for i, item := range selected {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		percent := i * 100 / total
		result := ItemResult{Name: item.Name, Source: item.Source}
		source := item.SourcePath(m.home)
		archivePath := filepath.Join(folder, item.ArchiveName())

		progress(NewProgressEvent(StageArchiving, item.Name, fmt.Sprintf("Archiving %s", item.Source), percent))

		size, err := CreateArchive(source, archivePath)
		switch {
		case errors.Is(err, ErrSourceMissing):
			result.Status = ItemSkipped
			result.Message = "source not present"
			progress(NewProgressEvent(StageArchiving, item.Name, "Skipped (source not present)", percent))
		case err != nil:
			result.Status = ItemFailed
			result.Message = err.Error()
			progress(NewErrorEvent(item.Name, err.Error()))
		default:
			result.Status = ItemArchived
			result.Size = size
			if size > m.chunkThreshold {
				progress(NewProgressEvent(StageChunking, item.Name, fmt.Sprintf("Splitting %s (%d bytes)", item.ArchiveName(), size), percent))
				parts, err := Split(archivePath, m.chunkThreshold)
				if err != nil {
					result.Status = ItemFailed
					result.Message = fmt.Sprintf("split failed: %v", err)
					progress(NewErrorEvent(item.Name, result.Message))
				} else {
					result.Parts = len(parts)
				}
			}
		}

		manifest.Items = append(manifest.Items, result)
	}

	progress(NewProgressEvent(StageManifest, "", "Writing manifest", 95))
	if err := manifest.Write(folder); err != nil {
		return nil, "", err
	}

	progress(NewProgressEvent(StageComplete, "", "Backup complete", 100))
	return manifest, folder, nil
}

// Restore extracts the selected items (all when names is empty) from the
// named backup folder into the home directory. Chunked archives are merged
// first; the merged file is removed afterwards, parts stay in place. An item
// with no archive in the folder is a skip.
func (m *Manager) Restore(ctx context.Context, backupName string, names []string, progress ProgressCallback) error {
	if progress == nil {
		progress = NoOpProgress
	}

	folder := filepath.Join(m.dataDir, backupName)
	if info, err := os.Stat(folder); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrBackupNotFound, backupName)
	}

	selected, err := m.items.Select(names)
	if err != nil {
		return err
	}

	total := len(selected)
	for i, item := range selected {
		if err := ctx.Err(); err != nil {
			return err
		}

		percent := i * 100 / total
		archivePath := filepath.Join(folder, item.ArchiveName())

		merged := false
		if IsChunked(archivePath) {
			progress(NewProgressEvent(StageMerging, item.Name, fmt.Sprintf("Merging parts of %s", item.ArchiveName()), percent))
			if err := Merge(archivePath); err != nil {
				progress(NewErrorEvent(item.Name, err.Error()))
				continue
			}
			merged = true
		}

		if _, err := os.Stat(archivePath); err != nil {
			progress(NewProgressEvent(StageExtracting, item.Name, "Skipped (not in backup)", percent))
			continue
		}

		progress(NewProgressEvent(StageExtracting, item.Name, fmt.Sprintf("Extracting %s", item.ArchiveName()), percent))
		err = ExtractArchive(archivePath, m.home)
		if merged {
			// Keep the folder in its chunked form for future uploads
			_ = os.Remove(archivePath)
		}
		if err != nil {
			progress(NewErrorEvent(item.Name, err.Error()))
			continue
		}
	}

	progress(NewProgressEvent(StageComplete, "", "Restore complete", 100))
	return nil
}

// Info describes one backup folder.
type Info struct {
	Name      string    // folder name (timestamp)
	Path      string    // absolute path
	CreatedAt time.Time // parsed from the folder name
	Size      int64     // total bytes of archives and parts
	Items     int       // number of archives (chunked counted once)
}

// List returns backup folders, newest first. Folders that don't parse as
// timestamps are ignored.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		createdAt, err := time.ParseInLocation(TimestampLayout, entry.Name(), time.Local)
		if err != nil {
			continue
		}
		info := Info{
			Name:      entry.Name(),
			Path:      filepath.Join(m.dataDir, entry.Name()),
			CreatedAt: createdAt,
		}
		info.Size, info.Items = folderStats(info.Path)
		backups = append(backups, info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

// Latest returns the most recent backup.
func (m *Manager) Latest() (*Info, error) {
	backups, err := m.List()
	if err != nil {
		return nil, err
	}
	if len(backups) == 0 {
		return nil, ErrNoBackups
	}
	return &backups[0], nil
}

// Prune removes backups beyond the keep newest. Returns removed folder names.
func (m *Manager) Prune(keep int) ([]string, error) {
	if keep < 1 {
		return nil, fmt.Errorf("keep must be at least 1, got %d", keep)
	}
	backups, err := m.List()
	if err != nil {
		return nil, err
	}
	if len(backups) <= keep {
		return nil, nil
	}

	var removed []string
	for _, b := range backups[keep:] {
		if err := os.RemoveAll(b.Path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", b.Name, err)
		}
		removed = append(removed, b.Name)
	}
	return removed, nil
}

// folderStats sums archive and part sizes in a backup folder. Chunked
// archives count as one item.
func folderStats(dir string) (int64, int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0
	}

	var size int64
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == ManifestFileName {
			continue
		}
		if info, err := entry.Info(); err == nil {
			size += info.Size()
		}
		if m := partRe.FindStringSubmatch(name); m != nil {
			seen[m[1]] = true
		} else {
			seen[name] = true
		}
	}
	return size, len(seen)
}
