package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docpay-cli/internal/logger"
)

var (
	// ErrUnsupportedFile is returned for files whose content cannot be uploaded.
	ErrUnsupportedFile = errors.New("unsupported file")

	// ErrAlreadyProcessed is returned for a file version that was uploaded before.
	ErrAlreadyProcessed = errors.New("already processed")
)

// supportedTypes are the content types the backend accepts.
var supportedTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/tiff":      true,
	"image/heic":      true,
	"image/webp":      true,
	"application/pdf": true,
	"text/plain":      true,
}

// Result is the outcome of processing one file.
type Result struct {
	Path        string
	Document    *domain.Document
	Extractions *domain.ExtractionsContainer
	Err         error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDocumentType sets the document type sent with every upload.
func WithDocumentType(docType domain.DocumentType) Option {
	return func(w *Watcher) {
		w.docType = docType
	}
}

// WithBranchID attaches upload metadata with the given branch id.
func WithBranchID(branchID string) Option {
	return func(w *Watcher) {
		w.branchID = branchID
	}
}

// fileKey identifies one version of a file.
type fileKey struct {
	size    int64
	modTime time.Time
}

// Watcher uploads files appearing under a root directory.
type Watcher struct {
	docs     driving.DocumentManager
	root     string
	docType  domain.DocumentType
	branchID string

	mu      sync.Mutex
	seen    map[string]fileKey
	watcher *fsnotify.Watcher
}

// New creates a watcher for root that processes files through docs.
func New(docs driving.DocumentManager, root string, opts ...Option) *Watcher {
	w := &Watcher{
		docs: docs,
		root: root,
		seen: make(map[string]fileKey),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Watch starts watching the root directory. The returned channel receives
// one Result per processed file and is closed when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) (<-chan Result, error) {
	info, err := os.Stat(w.root)
	if err != nil {
		return nil, fmt.Errorf("watch root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch root %s: not a directory", w.root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(w.root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.root, err)
	}

	w.mu.Lock()
	w.watcher = fsw
	w.mu.Unlock()

	results := make(chan Result)
	go w.run(ctx, fsw, results)

	return results, nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, results chan<- Result) {
	defer close(results)
	defer fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			path, ok := w.handleFsEvent(event)
			if !ok {
				continue
			}
			res := w.Process(ctx, path)
			if errors.Is(res.Err, ErrUnsupportedFile) || errors.Is(res.Err, ErrAlreadyProcessed) {
				logger.Debug("watch: skipping %s: %v", path, res.Err)
				continue
			}
			select {
			case results <- res:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// handleFsEvent returns the path to process for an event, if any.
// Removed and renamed files are forgotten so that a later file with
// the same name is uploaded again.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if w.isHidden(event.Name) {
		return "", false
	}

	switch {
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() || info.Size() == 0 {
			return "", false
		}
		return event.Name, true
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		w.forget(event.Name)
		return "", false
	default:
		// Chmod
		return "", false
	}
}

// Process uploads one file and waits for its extractions.
// A file whose size and modification time were already processed
// fails with ErrAlreadyProcessed. A failed attempt leaves the file
// unmarked so the next event retries it.
func (w *Watcher) Process(ctx context.Context, path string) (res Result) {
	res.Path = path

	info, err := os.Stat(path)
	if err != nil {
		res.Err = fmt.Errorf("stat %s: %w", path, err)
		return res
	}
	if !w.markSeen(path, fileKey{size: info.Size(), modTime: info.ModTime()}) {
		res.Err = fmt.Errorf("%s: %w", path, ErrAlreadyProcessed)
		return res
	}
	defer func() {
		if res.Err != nil {
			w.forget(path)
		}
	}()

	contentType, err := DetectContentType(path)
	if err != nil {
		res.Err = err
		return res
	}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("reading %s: %w", path, err)
		return res
	}

	logger.Info("watch: uploading %s (%s)", filepath.Base(path), contentType)

	var metadata *domain.DocumentMetadata
	if w.branchID != "" {
		metadata = &domain.DocumentMetadata{BranchID: w.branchID}
	}

	partial, err := w.docs.CreatePartialDocument(ctx, data, contentType, filepath.Base(path), w.docType, metadata)
	if err != nil {
		res.Err = fmt.Errorf("uploading %s: %w", path, err)
		return res
	}

	composite, err := w.docs.CreateCompositeDocument(ctx, []domain.Document{*partial}, w.docType)
	if err != nil {
		res.Err = fmt.Errorf("composing %s: %w", path, err)
		return res
	}
	res.Document = composite

	extractions, err := w.docs.GetExtractions(ctx, composite)
	if err != nil {
		res.Err = fmt.Errorf("extracting %s: %w", path, err)
		return res
	}
	res.Extractions = extractions

	return res
}

// markSeen records a file version and reports whether it is new.
func (w *Watcher) markSeen(path string, key fileKey) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if prev, ok := w.seen[path]; ok && prev.size == key.size && prev.modTime.Equal(key.modTime) {
		return false
	}
	w.seen[path] = key
	return true
}

func (w *Watcher) forget(path string) {
	w.mu.Lock()
	delete(w.seen, path)
	w.mu.Unlock()
}

// Close stops a running watch.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}

// DetectContentType sniffs the file content and returns its media type
// without parameters.
func DetectContentType(path string) (string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detecting type of %s: %w", path, err)
	}

	contentType, _, _ := strings.Cut(mt.String(), ";")
	contentType = strings.TrimSpace(contentType)
	if !supportedTypes[contentType] {
		return "", fmt.Errorf("%w: %s has type %s", ErrUnsupportedFile, filepath.Base(path), contentType)
	}
	return contentType, nil
}

// isHidden reports whether any path segment below the root starts with a dot.
func (w *Watcher) isHidden(path string) bool {
	if rel, err := filepath.Rel(w.root, path); err == nil {
		path = rel
	}
	return isHidden(path)
}

// isHidden reports whether any path segment starts with a dot.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "." && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
