// Package loader decodes image files, fits them into a slide box and caches
// the result. A single background worker serves asynchronous requests.
package loader

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/slidechooser/internal/layout"
	"github.com/AnyUserName/slidechooser/internal/logging"

	// Register the accepted decoders with image.Decode.
	_ "github.com/AnyUserName/slidechooser/internal/format"
)

// Key identifies one cache entry. The same file at a different size is a
// different entry.
type Key struct {
	Path string
	Size layout.Size
}

// Result is a fitted bitmap, or the error that prevented producing one.
type Result struct {
	Key   Key
	Image image.Image
	Err   error
}

// DecodeError reports a file that could not be opened or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.Path, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeFunc turns a file path into an image.
type DecodeFunc func(path string) (image.Image, error)

// Options configures a Loader. All fields are optional.
type Options struct {
	// Decode defaults to opening the file and calling image.Decode.
	Decode DecodeFunc
	// Deliver receives every result produced by the background worker. It is
	// called from the worker goroutine.
	Deliver func(Result)
	Logger  *slog.Logger
}

// Stats counts cache activity since the loader was created. Hits and Misses
// are counted by Load only.
type Stats struct {
	Decodes int
	Errors  int
	Hits    int
	Misses  int
	Entries int
}

// Loader owns the bitmap cache. The cache is unbounded.
type Loader struct {
	decode  DecodeFunc
	deliver func(Result)
	logger  *slog.Logger

	mu      sync.Mutex
	cache   map[Key]Result
	queue   []Key
	pending map[Key]bool
	running bool
	stats   Stats
	idle    sync.WaitGroup
}

// New creates a Loader.
func New(opts Options) *Loader {
	if opts.Decode == nil {
		opts.Decode = DecodeFile
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Loader{
		decode:  opts.Decode,
		deliver: opts.Deliver,
		logger:  opts.Logger,
		cache:   make(map[Key]Result),
		pending: make(map[Key]bool),
	}
}

// DecodeFile opens path and decodes it with any registered decoder.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Lookup returns the cached result for key without decoding. It is called
// on every render and does not count as a hit.
func (l *Loader) Lookup(key Key) (Result, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	res, ok := l.cache[key]
	return res, ok
}

// Load returns the fitted image for path at size, decoding on a cache miss.
// Failed decodes are cached too, so a broken file is only read once per size.
func (l *Loader) Load(path string, size layout.Size) Result {
	key := Key{Path: path, Size: size}

	l.mu.Lock()
	if res, ok := l.cache[key]; ok {
		l.stats.Hits++
		l.mu.Unlock()
		return res
	}
	l.stats.Misses++
	l.mu.Unlock()

	res := Result{Key: key}
	img, err := l.decode(path)
	if err != nil {
		res.Err = &DecodeError{Path: path, Err: err}
		l.logger.Error("decode failed", "path", path, "error", err)
	} else {
		res.Image = imaging.Fit(img, max(size.W, 1), max(size.H, 1), imaging.Lanczos)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, ok := l.cache[key]; ok {
		// Another caller finished first; keep one value per key.
		return prev
	}
	l.stats.Decodes++
	if res.Err != nil {
		l.stats.Errors++
	}
	l.cache[key] = res
	l.stats.Entries = len(l.cache)
	return res
}

// Request schedules key for background decoding. Keys already cached or
// already queued are ignored. The worker is started on demand and exits once
// the queue is empty.
func (l *Loader) Request(key Key) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.cache[key]; ok {
		return
	}
	if l.pending[key] {
		return
	}
	l.pending[key] = true
	l.queue = append(l.queue, key)
	if !l.running {
		l.running = true
		l.idle.Add(1)
		go l.work()
	}
}

func (l *Loader) work() {
	defer l.idle.Done()
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.running = false
			l.mu.Unlock()
			return
		}
		key := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		res := l.Load(key.Path, key.Size)

		l.mu.Lock()
		delete(l.pending, key)
		l.mu.Unlock()

		if l.deliver != nil {
			l.deliver(res)
		}
	}
}

// Wait blocks until the background worker is idle.
func (l *Loader) Wait() {
	l.idle.Wait()
}

// Pending is the number of queued requests not yet decoded.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Stats returns a snapshot of the counters.
func (l *Loader) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}
