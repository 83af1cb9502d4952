package service

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/zagros-construction/zagros-api/internal/dto"
)

// Smallest valid PNG: 8-byte signature plus truncated chunk data is enough
// for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func newUploadService(t *testing.T) (UploadService, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	svc := NewUploadService(dir, validator.New(validator.WithRequiredStructEnabled()), testLogger())
	return svc, dir
}

func TestUploadStoresImage(t *testing.T) {
	svc, dir := newUploadService(t)

	encoded := base64.StdEncoding.EncodeToString(pngHeader)
	resp, err := svc.Store(context.Background(), dto.UploadRequest{
		FileName: "site-photo.png",
		DataURI:  "data:image/png;base64," + encoded,
	})
	require.NoError(t, err)
	require.Equal(t, "image/png", resp.MimeType)
	require.Equal(t, int64(len(pngHeader)), resp.SizeBytes)
	require.True(t, strings.HasSuffix(resp.Path, ".png"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestUploadAcceptsBareBase64(t *testing.T) {
	svc, _ := newUploadService(t)

	resp, err := svc.Store(context.Background(), dto.UploadRequest{
		DataURI: base64.StdEncoding.EncodeToString(pngHeader),
	})
	require.NoError(t, err)
	require.Equal(t, "image/png", resp.MimeType)
}

func TestUploadRejectsNonImage(t *testing.T) {
	svc, dir := newUploadService(t)

	encoded := base64.StdEncoding.EncodeToString([]byte("plain text payload"))
	_, err := svc.Store(context.Background(), dto.UploadRequest{DataURI: encoded})
	require.ErrorIs(t, err, ErrUnsupportedMedia)

	_, statErr := os.Stat(dir)
	require.True(t, os.IsNotExist(statErr))
}

func TestUploadRejectsMalformedPayloads(t *testing.T) {
	svc, _ := newUploadService(t)

	cases := []string{
		"data:image/png,no-base64-marker",
		"data:image/png;base64",
		"not base64 at all!!",
		"",
	}
	for _, payload := range cases {
		_, err := svc.Store(context.Background(), dto.UploadRequest{DataURI: payload})
		require.Error(t, err, "payload %q", payload)
	}
}
