package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

const (
	uploadsDir = "uploads"
	cleanedDir = "cleaned"
)

// LocalStorage keeps uploaded documents and their cleaned output on the local filesystem
type LocalStorage struct {
	basePath string
	logger   *slog.Logger
}

// LocalStorageConfig configures local storage
type LocalStorageConfig struct {
	BasePath string // Base directory (e.g., "/tmp/textcleaner")
}

// FileMetadata contains information about stored files
type FileMetadata struct {
	JobID        string
	OriginalName string
	StoredPath   string
	Size         int64
	Hash         string
	ContentType  string
	CreatedAt    time.Time
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(cfg *LocalStorageConfig, logger *slog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &LocalStorage{
		basePath: cfg.BasePath,
		logger:   logger,
	}, nil
}

// SaveUpload copies an input document into the job's upload directory
func (s *LocalStorage) SaveUpload(ctx context.Context, jobID string, filename string, reader io.Reader) (*FileMetadata, error) {
	destPath := s.UploadPath(jobID, filename)
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return nil, apperrors.StorageError(err, destPath)
	}

	destFile, err := os.Create(destPath)
	if err != nil {
		return nil, apperrors.StorageError(err, destPath)
	}
	defer destFile.Close()

	// Calculate hash while copying
	hash := sha256.New()
	size, err := io.Copy(io.MultiWriter(destFile, hash), reader)
	if err != nil {
		return nil, apperrors.StorageError(err, destPath)
	}
	fileHash := hex.EncodeToString(hash.Sum(nil))

	s.logger.Info("document stored",
		slog.String("job_id", jobID),
		slog.String("filename", filename),
		slog.Int64("size", size),
		slog.String("hash", fileHash))

	return &FileMetadata{
		JobID:        jobID,
		OriginalName: filename,
		StoredPath:   destPath,
		Size:         size,
		Hash:         fileHash,
		ContentType:  ContentType(filename),
		CreatedAt:    time.Now(),
	}, nil
}

// UploadPath returns where the input document of a job is stored
func (s *LocalStorage) UploadPath(jobID, filename string) string {
	return filepath.Join(s.basePath, uploadsDir, jobID, filepath.Base(filename))
}

// OpenUpload opens a stored input document
func (s *LocalStorage) OpenUpload(ctx context.Context, jobID string, filename string) (io.ReadCloser, error) {
	path := s.UploadPath(jobID, filename)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.RecordNotFound("upload " + jobID + "/" + filepath.Base(filename))
		}
		return nil, apperrors.StorageError(err, path)
	}
	return file, nil
}

// SaveCleaned writes cleaned output for a job. The file is written to a
// temporary name and renamed so readers never see partial output.
func (s *LocalStorage) SaveCleaned(ctx context.Context, jobID string, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.basePath, cleanedDir, jobID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperrors.StorageError(err, dir)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	tmp, err := os.CreateTemp(dir, ".partial-*")
	if err != nil {
		return "", apperrors.StorageError(err, path)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", apperrors.StorageError(err, path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", apperrors.StorageError(err, path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", apperrors.StorageError(err, path)
	}

	s.logger.Info("cleaned output saved",
		slog.String("job_id", jobID),
		slog.String("filename", filename),
		slog.Int("size", len(data)))

	return path, nil
}

// ReadCleaned reads cleaned output of a job
func (s *LocalStorage) ReadCleaned(ctx context.Context, jobID string, filename string) ([]byte, error) {
	path := filepath.Join(s.basePath, cleanedDir, jobID, filepath.Base(filename))
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.RecordNotFound("cleaned output " + jobID + "/" + filepath.Base(filename))
		}
		return nil, apperrors.StorageError(err, path)
	}
	return data, nil
}

// DeleteJob removes all files associated with a job
func (s *LocalStorage) DeleteJob(ctx context.Context, jobID string) error {
	for _, dir := range []string{uploadsDir, cleanedDir} {
		path := filepath.Join(s.basePath, dir, jobID)
		if err := os.RemoveAll(path); err != nil {
			return apperrors.StorageError(err, path)
		}
	}

	s.logger.Info("job files deleted", slog.String("job_id", jobID))
	return nil
}

// CleanupOldFiles removes job directories older than the specified duration
func (s *LocalStorage) CleanupOldFiles(ctx context.Context, olderThan time.Duration) error {
	cutoffTime := time.Now().Add(-olderThan)

	for _, dir := range []string{uploadsDir, cleanedDir} {
		if err := s.cleanupDirectory(filepath.Join(s.basePath, dir), cutoffTime); err != nil {
			return fmt.Errorf("failed to cleanup %s: %w", dir, err)
		}
	}

	s.logger.Info("cleanup completed", slog.Duration("older_than", olderThan))
	return nil
}

// cleanupDirectory removes directories older than cutoff time
func (s *LocalStorage) cleanupDirectory(dir string, cutoffTime time.Time) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dirPath := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			s.logger.Warn("failed to get file info",
				slog.String("path", dirPath),
				slog.Any("error", err))
			continue
		}

		if info.ModTime().Before(cutoffTime) {
			if err := os.RemoveAll(dirPath); err != nil {
				s.logger.Warn("failed to remove directory",
					slog.String("path", dirPath),
					slog.Any("error", err))
			} else {
				s.logger.Debug("removed old directory",
					slog.String("path", dirPath),
					slog.Time("mod_time", info.ModTime()))
			}
		}
	}

	return nil
}

// ContentType returns the content type based on file extension
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text", ".md":
		return "text/plain; charset=utf-8"
	case ".html", ".htm":
		return "text/html"
	case ".xhtml":
		return "application/xhtml+xml"
	case ".xlsx", ".xlsm":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".csv":
		return "text/csv"
	case ".tsv":
		return "text/tab-separated-values"
	case ".json":
		return "application/json"
	case ".jsonl", ".ndjson":
		return "application/x-ndjson"
	default:
		return "application/octet-stream"
	}
}
