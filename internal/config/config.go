// Package config loads and hot-reloads the compositor's TOML configuration
// file, grounded on cogentcore-core's base/iox/tomlx (go-toml/v2 decode) and
// core/filepicker.go's fsnotify watcher-goroutine pattern, adapted from a
// directory listing watch to a single config-file watch.
package config

import (
	"log/slog"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

// Dock tunes the dock's interaction behavior (protocol/dock.Config mirrors
// these as typed values; this struct is the on-disk shape).
type Dock struct {
	RightClickFallback string  `toml:"right_click_fallback"` // "noop" | "left_click"
	MaxMagnification   float64 `toml:"max_magnification"`
	FalloffWidth       float64 `toml:"falloff_width"`
}

// Backend pins or overrides the CLI's auto-selected backend (cmd/otto reads
// this as a fallback to --winit/--tty-udev/--x11 flags).
type Backend struct {
	Default string `toml:"default"` // "winit" | "tty-udev" | "x11" | "" (auto)
}

// Config is the root document, e.g.:
//
//	[backend]
//	default = "winit"
//
//	[dock]
//	right_click_fallback = "noop"
//	max_magnification = 1.6
//	falloff_width = 64
type Config struct {
	Backend Backend `toml:"backend"`
	Dock    Dock    `toml:"dock"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Dock: Dock{
			RightClickFallback: "noop",
			MaxMagnification:   1.6,
			FalloffWidth:       64,
		},
	}
}

// Load reads and decodes path, falling back to Default() if path does not
// exist.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Watcher reloads Config from disk whenever path changes on disk, delivering
// the new value on Updates. Grounded on cogentcore-core's
// core/filepicker.go configWatcher/watchWatcher split: a single fsnotify
// watcher goroutine, select over Events/Errors, torn down via done channel.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan Config

	mu   sync.Mutex
	done chan struct{}
}

// NewWatcher starts watching path's parent directory (fsnotify watches
// directories, not bare files, so atomic rename-based rewrites are seen too)
// and returns a Watcher delivering decoded updates. Callers must call
// Close() when done.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dirOf(path)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{
		path:    path,
		watcher: fw,
		updates: make(chan Config, 1),
		done:    make(chan struct{}),
	}
	w.run()
	return w, nil
}

func (w *Watcher) run() {
	go func() {
		for {
			select {
			case <-w.done:
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Name != w.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(w.path)
				if err != nil {
					slog.Warn("config: reload failed", "path", w.path, "error", err)
					continue
				}
				select {
				case w.updates <- cfg:
				default:
					// Drop the stale pending update in favor of the fresh one.
					select {
					case <-w.updates:
					default:
					}
					w.updates <- cfg
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("config: watcher error", "error", err)
			}
		}
	}()
}

// Updates returns the channel delivering successfully reloaded configs.
func (w *Watcher) Updates() <-chan Config { return w.updates }

// Close stops the watcher goroutine and releases the fsnotify handle.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	return w.watcher.Close()
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
