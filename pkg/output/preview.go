package output

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// PreviewStore keeps rendered previews in memory for a limited time and hands
// out URLs that resolve back to them.
type PreviewStore struct {
	cache  *cache.Cache
	prefix string
}

// NewPreviewStore creates a store whose URLs are prefix + handle.
func NewPreviewStore(ttl time.Duration, prefix string) *PreviewStore {
	return &PreviewStore{
		cache:  cache.New(ttl, 2*ttl),
		prefix: prefix,
	}
}

// Publish stores data and returns its URL.
func (p *PreviewStore) Publish(_ context.Context, data []byte) (string, error) {
	handle := uuid.NewString()
	p.cache.SetDefault(handle, data)
	return p.prefix + handle, nil
}

// Get returns the preview stored under handle.
func (p *PreviewStore) Get(handle string) ([]byte, bool) {
	v, ok := p.cache.Get(handle)
	if !ok {
		return nil, false
	}
	data, ok := v.([]byte)
	return data, ok
}

// Len is the number of live previews.
func (p *PreviewStore) Len() int {
	return p.cache.ItemCount()
}
