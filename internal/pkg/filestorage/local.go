package filestorage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ekaplan/prepsphere/internal/pkg/logger"
)

// LocalStorage stores question bank images on the local filesystem under a
// public-serving directory tree mirroring the JSON tree:
//
//	{basePath}/{subject}/{lesson}/images/{prefix}_{timestamp}_{hash6}.{ext}
//
// Records only ever hold the bare filename; the resolution convention
// (base path + subject + lesson + "images") is part of the on-disk contract.
type LocalStorage struct {
	basePath string // root directory where images are stored
	baseURL  string // base URL the images directory is served from
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// BasePath returns the storage root, for static file serving.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SaveQuestionImage stores an uploaded image for a subject/lesson and returns
// the bare filename to persist in the question record.
func (ls *LocalStorage) SaveQuestionImage(fileHeader *multipart.FileHeader, subject, lesson, prefix string) (string, error) {
	if fileHeader == nil {
		return "", nil // no file uploaded
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	dir := ls.imagesDir(subject, lesson)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create images directory")
		return "", fmt.Errorf("failed to create images directory: %w", err)
	}

	sum := sha256.Sum256(content)
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		ext = ".png"
	}
	filename := fmt.Sprintf("%s_%d_%s%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(sum[:3]), ext)

	dstPath := filepath.Join(dir, filename)
	if err := os.WriteFile(dstPath, content, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write image file")
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", filename).Msg("Image saved successfully")
	return filename, nil
}

// ResolveURL builds the public URL for a stored image filename. Empty
// filenames resolve to the empty string.
func (ls *LocalStorage) ResolveURL(subject, lesson, filename string) string {
	if filename == "" {
		return ""
	}
	return strings.TrimRight(ls.baseURL, "/") + "/" + subject + "/" + lesson + "/images/" + filename
}

// DeleteImage removes a stored image. Deleting an absent image is treated as
// success so the operation stays idempotent.
func (ls *LocalStorage) DeleteImage(subject, lesson, filename string) error {
	if filename == "" {
		return nil
	}

	// Filenames come from records; reject anything path-like
	if filepath.Base(filename) != filename {
		return fmt.Errorf("invalid image filename: %s", filename)
	}

	physicalPath := filepath.Join(ls.imagesDir(subject, lesson), filename)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("Image to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete image")
		return fmt.Errorf("failed to delete image: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("Image deleted successfully")
	return nil
}

func (ls *LocalStorage) imagesDir(subject, lesson string) string {
	return filepath.Join(ls.basePath, subject, lesson, "images")
}
