package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	name   string
	folder string
}

func (s *stubUploader) Upload(_ context.Context, _ []byte, fileName, folder string) (string, error) {
	s.name, s.folder = fileName, folder
	return "https://cdn.example/" + folder + "/" + fileName, nil
}

var pngHeader = []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR")

func TestUpload(t *testing.T) {
	store := &stubUploader{}
	svc := &UploadService{Storage: store, Limit: 64}

	url, err := svc.Upload(context.Background(), "stories", pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "stories", store.folder)
	assert.True(t, strings.HasSuffix(store.name, ".png"))
	assert.Equal(t, "https://cdn.example/stories/"+store.name, url)

	_, err = svc.Upload(context.Background(), "secrets", pngHeader)
	assert.ErrorIs(t, err, ErrUnsupportedFolder)

	_, err = svc.Upload(context.Background(), "avatars", []byte("plain text, not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	_, err = svc.Upload(context.Background(), "services", big)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
