package screen

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/katchnrun/internal/object"
)

// Sprites holds the optional per-kind images. Decoding happens in the
// background; until Ready reports true every kind is drawn as a shape.
type Sprites struct {
	ready atomic.Bool

	mu      sync.Mutex
	decoded map[object.Kind]image.Image
	images  map[object.Kind]*ebiten.Image
}

// SpriteFile is the file name looked up for kind, e.g. "candy_cane.png".
func SpriteFile(kind object.Kind) string {
	return strings.ReplaceAll(kind.String(), " ", "_") + ".png"
}

// LoadSprites starts decoding the sprites in dir. An empty dir loads nothing.
// Missing files are skipped and unreadable ones logged.
func LoadSprites(dir string, logger *log.Logger) *Sprites {
	s := &Sprites{
		decoded: map[object.Kind]image.Image{},
		images:  map[object.Kind]*ebiten.Image{},
	}
	if dir == "" {
		s.ready.Store(true)
		return s
	}
	go func() {
		defer s.ready.Store(true)
		for kind := range object.KindCount {
			img, err := decodeFile(filepath.Join(dir, SpriteFile(kind)))
			switch {
			case errors.Is(err, fs.ErrNotExist):
				continue
			case err != nil:
				logger.Warn("sprite not loaded", "kind", kind, "err", err)
				continue
			}
			s.mu.Lock()
			s.decoded[kind] = img
			s.mu.Unlock()
		}
		logger.Debug("sprites loaded", "dir", dir, "count", s.count())
	}()
	return s
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Ready reports whether loading has finished.
func (s *Sprites) Ready() bool { return s.ready.Load() }

func (s *Sprites) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.decoded)
}

// Image returns the sprite of kind, or nil while loading or when there is none.
// GPU images are created lazily on the drawing goroutine.
func (s *Sprites) Image(kind object.Kind) *ebiten.Image {
	if !s.Ready() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if img, ok := s.images[kind]; ok {
		return img
	}
	src, ok := s.decoded[kind]
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	s.images[kind] = img
	return img
}
