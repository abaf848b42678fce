package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// fileChangedMsg reports that a loaded form file was written on disk.
type fileChangedMsg struct {
	path string
}

// formWatcher watches the directories of loaded files. Editors often
// replace files instead of writing them, so the directory is watched and
// events are filtered by name.
type formWatcher struct {
	w *fsnotify.Watcher

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]struct{}
}

func newFormWatcher() (*formWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "start watcher")
	}
	return &formWatcher{
		w:     w,
		files: make(map[string]struct{}),
		dirs:  make(map[string]struct{}),
	}, nil
}

func (fw *formWatcher) Watch(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	dir := filepath.Dir(abs)

	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.files[abs] = struct{}{}
	if _, ok := fw.dirs[dir]; ok {
		return
	}
	if err := fw.w.Add(dir); err != nil {
		log.Printf("watch %s: %v", dir, err)
		return
	}
	fw.dirs[dir] = struct{}{}
}

func (fw *formWatcher) watched(path string) bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	_, ok := fw.files[filepath.Clean(path)]
	return ok
}

// Next returns a command that waits for the next change of a watched file.
func (fw *formWatcher) Next() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-fw.w.Events:
				if !ok {
					return nil
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if fw.watched(ev.Name) {
					return fileChangedMsg{path: filepath.Clean(ev.Name)}
				}
			case err, ok := <-fw.w.Errors:
				if !ok {
					return nil
				}
				log.Printf("watcher: %v", err)
			}
		}
	}
}

func (fw *formWatcher) Close() error {
	return fw.w.Close()
}

// handleFileChanged marks buffers whose file changed on disk.
func (m model) handleFileChanged(msg fileChangedMsg) (tea.Model, tea.Cmd) {
	for i := range m.buffers {
		abs, err := filepath.Abs(m.buffers[i].filename)
		if err != nil || abs != msg.path {
			continue
		}
		if own := m.buffers[i].written; own != nil {
			if data, err := os.ReadFile(msg.path); err == nil && bytes.Equal(data, own) {
				continue
			}
		}
		m.buffers[i].changedOnDisk = true
		if i == m.currentBufferIndex {
			m.successMessage = filepath.Base(msg.path) + " changed on disk, Ctrl+R reloads"
		}
	}
	var cmd tea.Cmd
	if m.watcher != nil {
		cmd = m.watcher.Next()
	}
	return m, cmd
}
