package docgen

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFontLoaderMemoizesSuccess(t *testing.T) {
	var reads int32
	l := NewFontLoader("fonts/THSarabunNew.ttf")
	l.read = func(string) ([]byte, error) {
		atomic.AddInt32(&reads, 1)
		return []byte("font"), nil
	}

	for i := 0; i < 3; i++ {
		data, err := l.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []byte("font"), data)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&reads))
}

func TestFontLoaderRetriesAfterFailure(t *testing.T) {
	var reads int32
	l := NewFontLoader("fonts/THSarabunNew.ttf")
	l.read = func(string) ([]byte, error) {
		if atomic.AddInt32(&reads, 1) == 1 {
			return nil, errors.New("disk busy")
		}
		return []byte("font"), nil
	}

	_, err := l.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk busy")

	data, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("font"), data)

	_, err = l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&reads))
}

func TestFontLoaderSharesConcurrentRead(t *testing.T) {
	var reads int32
	release := make(chan struct{})
	l := NewFontLoader("fonts/THSarabunNew.ttf")
	l.read = func(string) ([]byte, error) {
		atomic.AddInt32(&reads, 1)
		<-release
		return []byte("font"), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := l.Load(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, []byte("font"), data)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&reads))
}

func TestFontLoaderHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	l := NewFontLoader("fonts/THSarabunNew.ttf")
	l.read = func(string) ([]byte, error) {
		<-release
		return []byte("font"), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFontLoaderRejectsEmptyFile(t *testing.T) {
	l := NewFontLoader("empty.ttf")
	l.read = func(string) ([]byte, error) { return nil, nil }

	_, err := l.Load(context.Background())
	assert.Error(t, err)
}

func TestFontLoaderWithoutPath(t *testing.T) {
	_, err := NewFontLoader("").Load(context.Background())
	assert.Error(t, err)
}
