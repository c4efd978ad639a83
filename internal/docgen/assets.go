package docgen

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// AssetResolver turns an image reference from a profile or payment record
// into bytes.
type AssetResolver interface {
	Resolve(ctx context.Context, ref string) ([]byte, error)
}

// LocalAssets resolves data URIs and files below BaseDir. Remote URLs are
// refused since rendering never goes to the network.
type LocalAssets struct {
	BaseDir string
}

func (a LocalAssets) Resolve(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return nil, fmt.Errorf("empty asset reference")
	case strings.HasPrefix(ref, "data:"):
		return decodeDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return nil, fmt.Errorf("remote asset %s is not fetched", ref)
	}

	if a.BaseDir == "" {
		return nil, fmt.Errorf("asset %s: no storage directory configured", ref)
	}
	path := filepath.Join(a.BaseDir, filepath.Clean("/"+ref))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", ref, err)
	}
	return data, nil
}

func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}
	if !strings.HasSuffix(meta, ";base64") {
		text, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("decode data URI: %w", err)
		}
		return []byte(text), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URI: %w", err)
	}
	return data, nil
}
