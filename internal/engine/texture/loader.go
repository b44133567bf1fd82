package texture

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/spacefolio/internal/logger"
)

// State is the lifecycle of a requested texture.
type State int

const (
	Pending State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Entry describes one requested texture.
type Entry struct {
	State  State
	ID     uint32 // GPU handle, valid when Ready
	Width  int
	Height int
	Err    error
}

// UploadFunc moves decoded pixels to the GPU and returns the handle.
type UploadFunc func(img *image.RGBA) uint32

type decoded struct {
	path string
	img  *image.RGBA
	err  error
}

// Loader decodes textures on worker goroutines and hands them back to the
// rendering goroutine through Poll. Request never blocks; a texture that
// fails to load stays Failed and the mesh using it renders untextured.
type Loader struct {
	dir     string
	maxSize int
	group   errgroup.Group
	log     *zap.Logger

	mu      sync.Mutex
	entries map[string]*Entry
	backlog []string
	done    []decoded
}

// NewLoader creates a loader resolving paths against dir with at most
// workers concurrent decodes.
func NewLoader(dir string, workers, maxSize int) *Loader {
	l := &Loader{
		dir:     dir,
		maxSize: maxSize,
		log:     logger.Named("texture"),
		entries: make(map[string]*Entry),
	}
	if workers > 0 {
		l.group.SetLimit(workers)
	}
	return l
}

// Request starts loading path if it has not been requested before.
func (l *Loader) Request(path string) {
	if path == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.entries[path]; ok {
		return
	}
	l.entries[path] = &Entry{State: Pending}
	if !l.start(path) {
		l.backlog = append(l.backlog, path)
	}
}

// start must be called with mu held.
func (l *Loader) start(path string) bool {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(l.dir, path)
	}
	return l.group.TryGo(func() error {
		img, err := Load(full, l.maxSize)

		l.mu.Lock()
		l.done = append(l.done, decoded{path: path, img: img, err: err})
		l.mu.Unlock()
		return nil
	})
}

// Poll uploads every texture decoded since the last call and starts queued
// decodes. It must run on the goroutine that owns the GL context. It returns
// the number of textures that became Ready.
func (l *Loader) Poll(upload UploadFunc) int {
	l.mu.Lock()
	done := l.done
	l.done = nil

	backlog := l.backlog[:0]
	for _, path := range l.backlog {
		if !l.start(path) {
			backlog = append(backlog, path)
		}
	}
	l.backlog = backlog
	l.mu.Unlock()

	ready := 0
	for _, d := range done {
		if d.err == nil && (d.img == nil || len(d.img.Pix) == 0) {
			d.err = fmt.Errorf("%s: empty image: %w", d.path, ErrUnsupported)
		}
		entry := Entry{State: Failed, Err: d.err}
		if d.err != nil {
			l.log.Warn("texture unavailable, rendering without it",
				zap.String("path", d.path),
				zap.Error(d.err),
			)
		} else {
			b := d.img.Bounds()
			entry = Entry{State: Ready, ID: upload(d.img), Width: b.Dx(), Height: b.Dy()}
			l.log.Debug("texture uploaded",
				zap.String("path", d.path),
				zap.Uint32("id", entry.ID),
				zap.Int("width", entry.Width),
				zap.Int("height", entry.Height),
			)
			ready++
		}

		l.mu.Lock()
		*l.entries[d.path] = entry
		l.mu.Unlock()
	}
	return ready
}

// Lookup returns the entry for path.
func (l *Loader) Lookup(path string) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[path]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// ID returns the GPU handle for path, or 0 if it is not Ready.
func (l *Loader) ID(path string) uint32 {
	e, ok := l.Lookup(path)
	if !ok || e.State != Ready {
		return 0
	}
	return e.ID
}

// Outstanding reports how many requests have not reached Ready or Failed.
func (l *Loader) Outstanding() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.State == Pending {
			n++
		}
	}
	return n
}

// Wait blocks until all started decodes finish. Backlogged requests only
// start from Poll, so callers that need everything decoded loop on
// Poll and Wait until Outstanding is zero.
func (l *Loader) Wait() error {
	return l.group.Wait()
}

// Entries returns a snapshot of every requested path and its state.
func (l *Loader) Entries() map[string]Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]Entry, len(l.entries))
	for k, e := range l.entries {
		out[k] = *e
	}
	return out
}
