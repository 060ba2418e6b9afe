// Package backup keeps timestamped copies of the store file next to it,
// rotating out the oldest once the cap is reached. Backups are plain file
// copies: both the JSON and SQLite backends write through a single file
// that is never open for writing between commands.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/studytrack/studytrack/internal/constants"
)

// Info contains information about a backup file
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations
type Manager struct {
	storePath string
	backupDir string
}

// NewManager creates a new backup manager for the given store file
func NewManager(storePath string) *Manager {
	configDir := filepath.Dir(storePath)
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(configDir, constants.BackupDirName),
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) ensureBackupDir() error {
	return os.MkdirAll(m.backupDir, 0700)
}

func (m *Manager) suffix() string {
	ext := filepath.Ext(m.storePath)
	if ext == "" {
		ext = ".bak"
	}
	return ext
}

// CreateBackup creates a new backup of the store file
func (m *Manager) CreateBackup() (string, error) {
	if err := m.ensureBackupDir(); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}

	// Minute precision first; fall back to seconds, then a counter, when
	// backups land close together.
	timestamp := time.Now().Format("20060102-1504")
	backupPath := filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+m.suffix())

	if _, err := os.Stat(backupPath); err == nil {
		timestamp = time.Now().Format("20060102-150405")
		backupPath = filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+m.suffix())

		counter := 1
		for {
			if _, err := os.Stat(backupPath); os.IsNotExist(err) {
				break
			}
			backupPath = filepath.Join(m.backupDir,
				fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, timestamp, counter, m.suffix()))
			counter++
			if counter > 100 {
				return "", fmt.Errorf("failed to generate unique backup filename")
			}
		}
	}

	if err := copyFile(m.storePath, backupPath); err != nil {
		return "", fmt.Errorf("failed to back up store: %w", err)
	}

	if err := m.rotateBackups(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
	}

	return backupPath, nil
}

// ListBackups returns available backups, newest first
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), constants.BackupFilePrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: info.ModTime(),
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// RestoreBackup replaces the store file with the named backup. The
// current store is backed up first so a restore is itself reversible.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("backup not found: %s", backupPath)
	}

	if _, err := os.Stat(m.storePath); err == nil {
		if _, err := m.CreateBackup(); err != nil {
			return fmt.Errorf("failed to back up current store before restore: %w", err)
		}
	}

	if err := copyFile(backupPath, m.storePath); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	return nil
}

// rotateBackups removes the oldest backups over the retention cap
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return err
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
