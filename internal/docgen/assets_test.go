package docgen

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalAssetsDataURI(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	data, err := LocalAssets{}.Resolve(context.Background(), uri)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	_, err = LocalAssets{}.Resolve(context.Background(), "data:image/png;base64,***")
	assert.Error(t, err)
}

func TestLocalAssetsFileUnderBaseDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logos"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logos", "shop.png"), []byte("logo"), 0o644))

	assets := LocalAssets{BaseDir: dir}

	data, err := assets.Resolve(context.Background(), "logos/shop.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("logo"), data)

	data, err = assets.Resolve(context.Background(), "../../logos/shop.png")
	require.NoError(t, err, "parent segments are clamped to the base directory")
	assert.Equal(t, []byte("logo"), data)

	_, err = assets.Resolve(context.Background(), "logos/missing.png")
	assert.Error(t, err)
}

func TestLocalAssetsRefusesRemote(t *testing.T) {
	_, err := LocalAssets{BaseDir: t.TempDir()}.Resolve(context.Background(), "https://cdn.example.com/logo.png")
	assert.Error(t, err)

	_, err = LocalAssets{}.Resolve(context.Background(), "")
	assert.Error(t, err)
}
