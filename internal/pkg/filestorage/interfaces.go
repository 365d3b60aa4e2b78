package filestorage

import (
	"errors"
	"io"
	"mime/multipart"
)

// ErrOutsideStorage is returned for paths that do not point into the storage root
var ErrOutsideStorage = errors.New("path is outside the storage root")

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save writes src under subPath and returns the server-relative file URL
	Save(src io.Reader, filename, subPath string) (string, error)

	// SaveFileWithPath saves an uploaded multipart file under subPath
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a file addressed by its file URL
	DeleteFile(fileURL string) error

	// Exists reports whether the file addressed by fileURL exists
	Exists(fileURL string) bool

	// GetFullPath returns the filesystem path for a given file URL
	GetFullPath(fileURL string) (string, error)
}
