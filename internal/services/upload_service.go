package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedFolder = errors.New("folder must be one of services, stories, avatars")
	ErrUnsupportedFile   = errors.New("only image uploads are accepted")
	ErrFileTooLarge      = errors.New("file exceeds the upload limit")
)

var uploadFolders = map[string]bool{"services": true, "stories": true, "avatars": true}

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

type Uploader interface {
	Upload(ctx context.Context, file []byte, fileName, folder string) (string, error)
}

type UploadService struct {
	Storage Uploader
	Limit   int64
}

// Upload stores an image under folder with a random file name and returns its URL.
func (s *UploadService) Upload(ctx context.Context, folder string, data []byte) (string, error) {
	if !uploadFolders[folder] {
		return "", ErrUnsupportedFolder
	}
	if s.Limit > 0 && int64(len(data)) > s.Limit {
		return "", ErrFileTooLarge
	}
	ext, ok := imageExt[http.DetectContentType(data)]
	if !ok {
		return "", ErrUnsupportedFile
	}
	return s.Storage.Upload(ctx, data, uuid.NewString()+ext, folder)
}
