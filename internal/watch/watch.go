package watch

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events one atomic replace produces.
const DefaultDebounce = 100 * time.Millisecond

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // File written or replaced
	ChangeRemoved                    // File no longer exists
)

func (k ChangeKind) String() string {
	if k == ChangeRemoved {
		return "removed"
	}
	return "modified"
}

// Change is one settled change to a watched file.
type Change struct {
	Kind ChangeKind
	File string // Absolute path
}

// Watcher reports changes to a fixed set of files. It watches their
// parent directories because the registry and settings editor replace
// files by rename, which drops a watch held on the file itself.
type Watcher struct {
	Changes <-chan Change // Read-only external channel

	changes  chan Change // Internal write channel
	files    map[string]bool
	dirs     []string
	debounce time.Duration

	watcher  *fsnotify.Watcher
	stop     chan struct{}
	done     chan struct{}
	started  bool
	stopOnce sync.Once
}

// New creates a watcher for files. Nothing is watched until Start.
func New(files ...string) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		files:    make(map[string]bool),
		debounce: DefaultDebounce,
		watcher:  fw,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	seen := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}

	ch := make(chan Change, 16)
	w.Changes = ch
	w.changes = ch
	return w, nil
}

// Start begins watching. Every parent directory must exist.
func (w *Watcher) Start() error {
	for _, dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		w.watcher.Close()
		if w.started {
			<-w.done // Wait for loop to exit
		}
		close(w.changes)
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[name] = time.Now()
			}

		case <-ticker.C:
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= w.debounce {
					delete(pending, file)
					if !w.emit(file) {
						return
					}
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Ignore watch errors; they're non-fatal.
		}
	}
}

// emit reports false when the watcher is stopping.
func (w *Watcher) emit(file string) bool {
	kind := ChangeModified
	if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
		kind = ChangeRemoved
	}

	select {
	case w.changes <- Change{Kind: kind, File: file}:
		return true
	case <-w.stop:
		return false
	}
}
