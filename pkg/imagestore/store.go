package imagestore

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// ErrDecode indicates a malformed embedded image payload
var ErrDecode = errors.New("malformed image payload")

const thumbnailSize = 300

// Store persists base64-embedded images under a media root
type Store struct {
	root string
}

// New creates a new image store rooted at the given directory
func New(root string) *Store {
	return &Store{root: root}
}

// Save decodes a base64 image payload (optionally a data URI such as
// "data:image/png;base64,...."), validates it, writes the original plus a
// downscaled thumbnail, and returns the stored image path relative to the
// media root.
func (s *Store) Save(payload string) (string, error) {
	raw, err := decodePayload(payload)
	if err != nil {
		return "", err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	dir := filepath.Join(s.root, "recipes", "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	name := uuid.NewString()
	filename := name + "." + format
	if err := os.WriteFile(filepath.Join(dir, filename), raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	if err := s.writeThumbnail(img, format, filepath.Join(dir, name+"_thumb."+format)); err != nil {
		return "", err
	}

	return filepath.Join("recipes", "images", filename), nil
}

// writeThumbnail downscales the image so listings do not serve full-size files
func (s *Store) writeThumbnail(img image.Image, format, path string) error {
	thumb := resize.Thumbnail(thumbnailSize, thumbnailSize, img, resize.Lanczos3)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create thumbnail: %w", err)
	}
	defer f.Close()

	switch format {
	case "jpeg":
		err = jpeg.Encode(f, thumb, &jpeg.Options{Quality: 85})
	default:
		err = png.Encode(f, thumb)
	}
	if err != nil {
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return nil
}

func decodePayload(payload string) ([]byte, error) {
	if payload == "" {
		return nil, ErrDecode
	}

	data := payload
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ";base64,")
		if idx < 0 {
			return nil, ErrDecode
		}
		data = payload[idx+len(";base64,"):]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return raw, nil
}
