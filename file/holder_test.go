package file_test

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-flg/ast"
	"github.com/KimNorgaard/go-flg/codec"
	"github.com/KimNorgaard/go-flg/file"
)

func writeDocument(t *testing.T, doc *ast.Document, scheme codec.Scheme) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.flg")
	require.NoError(t, file.Save(path, doc, scheme))
	return path
}

func TestHolder_Get(t *testing.T) {
	path := writeDocument(t, sampleDocument(), codec.Raw)

	h, err := file.NewHolder(path, codec.Raw, zerolog.Nop())
	require.NoError(t, err)
	defer h.Stop()

	got := h.Get()
	require.True(t, sampleDocument().Equal(got))

	// Callers receive copies.
	got.Set("name", ast.String("Mallory"))
	v, _ := h.Get().Get("name")
	require.Equal(t, ast.String("Alice"), v)
}

func TestHolder_NewHolderMissingFile(t *testing.T) {
	_, err := file.NewHolder(filepath.Join(t.TempDir(), "missing.flg"), codec.Raw, zerolog.Nop())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestHolder_ReloadAndOnChange(t *testing.T) {
	path := writeDocument(t, sampleDocument(), codec.Base64)

	h, err := file.NewHolder(path, codec.Base64, zerolog.Nop())
	require.NoError(t, err)
	defer h.Stop()

	var mu sync.Mutex
	var received *ast.Document
	h.OnChange(func(doc *ast.Document) {
		mu.Lock()
		received = doc
		mu.Unlock()
	})

	require.NoError(t, file.Save(path, ast.New().Set("age", ast.Int(31)), codec.Base64))
	require.NoError(t, h.Reload())

	v, _ := h.Get().Get("age")
	require.Equal(t, ast.Int(31), v)

	mu.Lock()
	defer mu.Unlock()
	require.NotNil(t, received)
	require.Equal(t, []string{"<age>"}, received.Keys())
}

func TestHolder_ReloadFailureKeepsDocument(t *testing.T) {
	path := writeDocument(t, sampleDocument(), codec.Hex)

	var logs bytes.Buffer
	h, err := file.NewHolder(path, codec.Hex, zerolog.New(&logs))
	require.NoError(t, err)
	defer h.Stop()

	require.NoError(t, os.WriteFile(path, []byte("not hex at all"), 0o644))
	err = h.Reload()
	require.ErrorIs(t, err, codec.ErrMalformed)

	require.True(t, sampleDocument().Equal(h.Get()))
	require.Contains(t, logs.String(), "document reload failed, keeping old document")
}

func TestHolder_Update(t *testing.T) {
	path := writeDocument(t, sampleDocument(), codec.Rot12)

	h, err := file.NewHolder(path, codec.Rot12, zerolog.Nop())
	require.NoError(t, err)
	defer h.Stop()

	err = h.Update(func(doc *ast.Document) error {
		doc.Delete("tags").Set("age", ast.Int(40))
		return nil
	})
	require.NoError(t, err)

	onDisk, err := file.Load(path, codec.Rot12)
	require.NoError(t, err)
	require.True(t, onDisk.Equal(h.Get()))
	require.Equal(t, []string{"<name>", "<age>", "<greet>"}, onDisk.Keys())

	failing := h.Update(func(doc *ast.Document) error {
		doc.Clear()
		return os.ErrPermission
	})
	require.ErrorIs(t, failing, os.ErrPermission)
	require.Equal(t, 3, h.Get().Len())
}

func TestHolder_Watch(t *testing.T) {
	path := writeDocument(t, sampleDocument(), codec.Raw)

	h, err := file.NewHolder(path, codec.Raw, zerolog.Nop())
	require.NoError(t, err)
	defer h.Stop()

	var mu sync.Mutex
	var callCount int
	h.OnChange(func(*ast.Document) {
		mu.Lock()
		callCount++
		mu.Unlock()
	})

	require.NoError(t, h.Watch())

	require.NoError(t, os.WriteFile(path, []byte("<name>\"Bob\"</name>\n"), 0o644))

	require.Eventually(t, func() bool {
		v, _ := h.Get().Get("name")
		return ast.Equal(v, ast.String("Bob"))
	}, 2*time.Second, 20*time.Millisecond, "file watcher did not trigger reload")

	mu.Lock()
	require.Positive(t, callCount)
	mu.Unlock()

	h.Stop()
	h.Stop()
}

func TestHolder_WatchAndStop(t *testing.T) {
	t.Run("Concurrent calls", func(t *testing.T) {
		path := writeDocument(t, sampleDocument(), codec.Raw)
		h, err := file.NewHolder(path, codec.Raw, zerolog.Nop())
		require.NoError(t, err)

		var wg sync.WaitGroup
		var watchErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			watchErr = h.Watch()
		}()
		go func() {
			defer wg.Done()
			h.Stop()
		}()
		wg.Wait()

		if watchErr != nil {
			require.ErrorIs(t, watchErr, file.ErrStopped)
		}

		require.ErrorIs(t, h.Watch(), file.ErrStopped)
	})

	t.Run("Watch twice", func(t *testing.T) {
		path := writeDocument(t, sampleDocument(), codec.Raw)
		h, err := file.NewHolder(path, codec.Raw, zerolog.Nop())
		require.NoError(t, err)
		defer h.Stop()

		require.NoError(t, h.Watch())
		require.EqualError(t, h.Watch(), "file: already watching")
	})
}

func TestHolder_ConcurrentAccess(t *testing.T) {
	path := writeDocument(t, sampleDocument(), codec.Raw)

	h, err := file.NewHolder(path, codec.Raw, zerolog.Nop())
	require.NoError(t, err)
	defer h.Stop()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 50 {
				_ = h.Get().Len()
			}
		}()
		go func() {
			defer wg.Done()
			_ = h.Update(func(doc *ast.Document) error {
				doc.Set("counter", ast.Int(i))
				return nil
			})
		}()
	}
	wg.Wait()

	require.True(t, h.Get().Has("counter"))
}
