package docgen

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"
)

// FontSource provides the TrueType bytes of the document typeface.
type FontSource interface {
	Load(ctx context.Context) ([]byte, error)
}

// FontLoader reads a font once per process. Concurrent callers share one
// read; a successful read is kept for good, a failed one is retried on the
// next call.
type FontLoader struct {
	path  string
	read  func(string) ([]byte, error)
	group singleflight.Group

	mu   sync.RWMutex
	data []byte
}

// NewFontLoader returns a loader for the font file at path.
func NewFontLoader(path string) *FontLoader {
	return &FontLoader{path: path, read: os.ReadFile}
}

func (l *FontLoader) Load(ctx context.Context) ([]byte, error) {
	l.mu.RLock()
	data := l.data
	l.mu.RUnlock()
	if data != nil {
		return data, nil
	}

	if l.path == "" {
		return nil, fmt.Errorf("font: no font path configured")
	}

	ch := l.group.DoChan(l.path, func() (interface{}, error) {
		b, err := l.read(l.path)
		if err != nil {
			return nil, fmt.Errorf("font: read %s: %w", l.path, err)
		}
		if len(b) == 0 {
			return nil, fmt.Errorf("font: %s is empty", l.path)
		}
		l.mu.Lock()
		l.data = b
		l.mu.Unlock()
		return b, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// StaticFont serves font bytes already in memory.
type StaticFont []byte

func (f StaticFont) Load(context.Context) ([]byte, error) {
	if len(f) == 0 {
		return nil, fmt.Errorf("font: no font data")
	}
	return f, nil
}
