package source

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a burst of file events is reported.
const DefaultDebounce = 250 * time.Millisecond

// Change is sent when one of the watched files changed.
type Change struct {
	// Path is the last watched path that changed in the burst.
	Path string
}

// Watch reports changes to paths. Editors usually replace files instead of writing in
// place, so the parent directories are watched and events are filtered by name.
// Bursts are coalesced into one Change per debounce window.
//
// Call the returned stop function to tear down the watcher.
func Watch(paths []string, debounce time.Duration) (<-chan Change, func(), error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	wanted := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, absErr := filepath.Abs(p)
		if absErr != nil {
			_ = w.Close()
			return nil, nil, absErr
		}
		wanted[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for d := range dirs {
		if addErr := w.Add(d); addErr != nil {
			_ = w.Close()
			return nil, nil, addErr
		}
	}

	ch := make(chan Change, 1)
	done := make(chan struct{})

	go func() {
		defer close(ch)
		var timer *time.Timer
		var last string

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				name, _ := filepath.Abs(ev.Name)
				if _, match := wanted[name]; !match || shouldIgnore(ev) {
					continue
				}
				last = name
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
			case <-timerChan(timer):
				timer = nil
				select {
				case ch <- Change{Path: last}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		_ = w.Close()
	}
	return ch, stop, nil
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// shouldIgnore drops events that never change file contents.
func shouldIgnore(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return true
	}
	base := filepath.Base(ev.Name)
	return strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#")
}
