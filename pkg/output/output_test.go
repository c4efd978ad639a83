package output

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSaverWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	s := NewDirSaver(dir)
	assert.False(t, s.Ready())

	require.NoError(t, s.Save(context.Background(), "QT-0001.pdf", []byte("%PDF-1.3")))

	data, err := os.ReadFile(filepath.Join(dir, "QT-0001.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))
	assert.True(t, s.Ready())
}

func TestDirSaverKeepsFilesInsideDir(t *testing.T) {
	dir := t.TempDir()
	s := NewDirSaver(dir)

	require.NoError(t, s.Save(context.Background(), "../../etc/IV-1.pdf", []byte("x")))

	_, err := os.Stat(filepath.Join(dir, "IV-1.pdf"))
	assert.NoError(t, err)
	assert.Error(t, s.Save(context.Background(), "", []byte("x")))
}

func TestNetworkSaverSendsBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	got := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		b, _ := io.ReadAll(conn)
		got <- string(b)
	}()

	s := NewNetworkSaver(ln.Addr().String())
	require.NoError(t, s.Save(context.Background(), "BN-1.pdf", []byte("%PDF-data")))

	select {
	case data := <-got:
		assert.Equal(t, "%PDF-data", data)
	case <-time.After(2 * time.Second):
		t.Fatal("printer received nothing")
	}
}

func TestNewSaverFromConfig(t *testing.T) {
	s, err := NewSaverFromConfig("none", "", "")
	require.NoError(t, err)
	assert.NoError(t, s.Save(context.Background(), "a.pdf", nil))

	_, err = NewSaverFromConfig("dir", "", "")
	assert.Error(t, err)

	_, err = NewSaverFromConfig("network", "", "")
	assert.Error(t, err)

	_, err = NewSaverFromConfig("usb", "", "")
	assert.Error(t, err)
}

func TestPreviewStore(t *testing.T) {
	store := NewPreviewStore(time.Minute, "/api/v1/previews/")

	url, err := store.Publish(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/api/v1/previews/"))

	data, ok := store.Get(strings.TrimPrefix(url, "/api/v1/previews/"))
	require.True(t, ok)
	assert.Equal(t, []byte("%PDF"), data)
	assert.Equal(t, 1, store.Len())

	_, ok = store.Get("unknown")
	assert.False(t, ok)
}

func TestPreviewStoreExpires(t *testing.T) {
	store := NewPreviewStore(20*time.Millisecond, "")

	handle, err := store.Publish(context.Background(), []byte("%PDF"))
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)
	_, ok := store.Get(handle)
	assert.False(t, ok)
}
