package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/logger"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath     string // root directory where files are stored
	publicPrefix string // leading segment of returned file URLs, e.g. "uploads"
	now          func() time.Time
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the directory on the server; publicPrefix is the first segment
// of every returned file URL and must match the static route.
func NewLocalStorage(basePath, publicPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	publicPrefix = strings.Trim(publicPrefix, "/")
	if publicPrefix == "" {
		publicPrefix = "uploads"
	}

	return &LocalStorage{
		basePath:     basePath,
		publicPrefix: publicPrefix,
		now:          time.Now,
	}, nil
}

// SanitizeFilename strips directories and replaces whitespace runs with '-'
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		name = "file"
	}
	return whitespaceRun.ReplaceAllString(name, "-")
}

// Save writes src to <basePath>/<subPath>/<unixMillis>-<sanitized filename>
// and returns "<publicPrefix>/<subPath>/<stored name>".
func (ls *LocalStorage) Save(src io.Reader, filename, subPath string) (string, error) {
	subPath = strings.Trim(path.Clean("/"+filepath.ToSlash(subPath)), "/")

	fullDirPath := filepath.Join(ls.basePath, filepath.FromSlash(subPath))
	if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	storedName := strconv.FormatInt(ls.now().UnixMilli(), 10) + "-" + SanitizeFilename(filename)
	dstPath := filepath.Join(fullDirPath, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	fileURL := path.Join(ls.publicPrefix, subPath, storedName)
	logger.Info().Str("filename", filename).Str("file_url", fileURL).Msg("File saved successfully")
	return fileURL, nil
}

// SaveFileWithPath saves an uploaded multipart file to a specified subdirectory
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	return ls.Save(file, fileHeader.Filename, subPath)
}

// GetFullPath maps a file URL such as "uploads/notes/1-a.pdf" onto the
// filesystem. URLs not under the public prefix are rejected.
func (ls *LocalStorage) GetFullPath(fileURL string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(fileURL, "\\", "/"))
	prefix := "/" + ls.publicPrefix + "/"
	if !strings.HasPrefix(clean, prefix) {
		return "", fmt.Errorf("%w: %s", ErrOutsideStorage, fileURL)
	}
	rel := strings.TrimPrefix(clean, prefix)
	return filepath.Join(ls.basePath, filepath.FromSlash(rel)), nil
}

// Exists reports whether the file addressed by fileURL is present on disk
func (ls *LocalStorage) Exists(fileURL string) bool {
	full, err := ls.GetFullPath(fileURL)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

// DeleteFile removes a file from the storage filesystem.
// Returns nil if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	if fileURL == "" {
		return nil
	}

	physicalPath, err := ls.GetFullPath(fileURL)
	if err != nil {
		return err
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}
