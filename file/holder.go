package file

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/KimNorgaard/go-flg"
	"github.com/KimNorgaard/go-flg/ast"
	"github.com/KimNorgaard/go-flg/codec"
)

// ErrStopped is returned by Watch once the holder has been stopped.
var ErrStopped = errors.New("file: holder stopped")

// Holder provides thread-safe access to a document stored on disk, with
// reload on file change.
type Holder struct {
	mu       sync.RWMutex
	updateMu sync.Mutex
	doc      *ast.Document
	path     string
	scheme   codec.Scheme
	opts     []flg.Option
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	onChange []func(*ast.Document)
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewHolder loads the document at path and returns a holder for it.
func NewHolder(path string, scheme codec.Scheme, logger zerolog.Logger, opts ...flg.Option) (*Holder, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	opts = append(opts[:len(opts):len(opts)], flg.WithLogger(logger))
	doc, err := Load(absPath, scheme, opts...)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	return &Holder{
		doc:    doc,
		path:   absPath,
		scheme: scheme,
		opts:   opts,
		logger: logger.With().Str("path", absPath).Logger(),
		stopCh: make(chan struct{}),
	}, nil
}

// Path returns the absolute path of the held file.
func (h *Holder) Path() string { return h.path }

// Get returns a copy of the current document.
func (h *Holder) Get() *ast.Document {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.doc.Clone()
}

// Reload reads the document from disk again. On failure the current
// document is kept.
func (h *Holder) Reload() error {
	h.logger.Info().Msg("reloading document")

	doc, err := Load(h.path, h.scheme, h.opts...)
	if err != nil {
		h.logger.Error().Err(err).Msg("document reload failed, keeping old document")
		return fmt.Errorf("reload document: %w", err)
	}

	h.swap(doc)
	h.logger.Info().Msg("document reloaded successfully")
	return nil
}

// Update applies fn to a copy of the current document, saves the result
// and makes it current. Nothing changes if fn or the save fails.
func (h *Holder) Update(fn func(*ast.Document) error) error {
	h.updateMu.Lock()
	defer h.updateMu.Unlock()

	h.mu.RLock()
	doc := h.doc.Clone()
	h.mu.RUnlock()

	if err := fn(doc); err != nil {
		return err
	}
	if err := Save(h.path, doc, h.scheme, h.opts...); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	h.swap(doc)
	return nil
}

// OnChange registers a callback run with a copy of the document after
// every successful reload or update.
func (h *Holder) OnChange(fn func(*ast.Document)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

func (h *Holder) swap(doc *ast.Document) {
	h.mu.Lock()
	old := h.doc
	h.doc = doc
	callbacks := append([]func(*ast.Document){}, h.onChange...)
	h.mu.Unlock()

	h.logChanges(old, doc)

	for _, fn := range callbacks {
		fn(doc.Clone())
	}
}

// Watch starts watching the file for changes. Changes trigger a reload.
func (h *Holder) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory; editors and Save replace the file by renaming.
	dir := filepath.Dir(h.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	h.mu.Lock()
	select {
	case <-h.stopCh:
		h.mu.Unlock()
		watcher.Close()
		return ErrStopped
	default:
	}
	if h.watcher != nil {
		h.mu.Unlock()
		watcher.Close()
		return errors.New("file: already watching")
	}
	h.watcher = watcher
	h.mu.Unlock()

	go h.watchLoop(watcher)

	h.logger.Info().Msg("watching document for changes")
	return nil
}

// Stop stops watching for file changes. It is safe to call more than once.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		h.mu.Lock()
		close(h.stopCh)
		watcher := h.watcher
		h.mu.Unlock()
		if watcher != nil {
			watcher.Close()
		}
	})
}

func (h *Holder) watchLoop(watcher *fsnotify.Watcher) {
	filename := filepath.Base(h.path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				h.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("document file changed")

				if err := h.Reload(); err != nil {
					h.logger.Error().Err(err).Msg("file watch reload failed")
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("file watcher error")

		case <-h.stopCh:
			return
		}
	}
}

func (h *Holder) logChanges(old, doc *ast.Document) {
	if old.Len() != doc.Len() {
		h.logger.Info().
			Int("old", old.Len()).
			Int("new", doc.Len()).
			Msg("entry count changed")
	}
	if old.Overridden() != doc.Overridden() {
		h.logger.Info().
			Bool("old", old.Overridden()).
			Bool("new", doc.Overridden()).
			Msg("override flag changed")
	}
}
