package imagestore

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURI(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestStoreSave(t *testing.T) {
	root := t.TempDir()
	store := New(root)

	path, err := store.Save(pngDataURI(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, filepath.Join("recipes", "images")))
	assert.True(t, strings.HasSuffix(path, ".png"))

	_, err = os.Stat(filepath.Join(root, path))
	require.NoError(t, err)

	thumb := strings.TrimSuffix(filepath.Join(root, path), ".png") + "_thumb.png"
	_, err = os.Stat(thumb)
	require.NoError(t, err, "thumbnail must be written alongside the original")
}

func TestStoreSave_BareBase64(t *testing.T) {
	store := New(t.TempDir())

	uri := pngDataURI(t)
	bare := strings.TrimPrefix(uri, "data:image/png;base64,")

	path, err := store.Save(bare)
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}

func TestStoreSave_Malformed(t *testing.T) {
	store := New(t.TempDir())

	tests := []struct {
		name    string
		payload string
	}{
		{"empty", ""},
		{"data uri without base64 marker", "data:image/png,rawbytes"},
		{"invalid base64", "data:image/png;base64,!!!not-base64!!!"},
		{"not an image", base64.StdEncoding.EncodeToString([]byte("plain text"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Save(tt.payload)
			require.ErrorIs(t, err, ErrDecode)
		})
	}
}
