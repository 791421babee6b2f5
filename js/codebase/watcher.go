package codebase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ChangeFunc is called after a watched file was re-parsed. info is nil
// when the file was removed.
type ChangeFunc func(path string, info *FileInfo)

// FileWatcher keeps a Codebase in sync with the files below its root.
type FileWatcher struct {
	codebase *Codebase
	onChange ChangeFunc
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	done     chan struct{}
}

func NewFileWatcher(c *Codebase, onChange ChangeFunc) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &FileWatcher{
		codebase: c,
		onChange: onChange,
		watcher:  w,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start registers the root and its subdirectories and begins processing
// events in the background.
func (w *FileWatcher) Start() error {
	if err := w.addTree(w.codebase.RootDir()); err != nil {
		w.watcher.Close()
		return err
	}
	go w.run()
	return nil
}

// Stop ends event processing and waits for it to finish.
func (w *FileWatcher) Stop() {
	close(w.stopCh)
	<-w.done
}

func (w *FileWatcher) addTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && skipDir(info.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *FileWatcher) run() {
	defer close(w.done)
	defer w.watcher.Close()

	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watch: %s", err)
		}
	}
}

func (w *FileWatcher) handle(ev fsnotify.Event) {
	log.Debugf("event: %s", ev)

	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		if w.codebase.GetFile(ev.Name) != nil {
			w.codebase.RemoveFile(ev.Name)
			w.notify(ev.Name, nil)
		}
		return
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(ev.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		if ev.Has(fsnotify.Create) && !skipDir(info.Name()) {
			if err := w.addTree(ev.Name); err != nil {
				log.Warningf("%s", err)
			}
		}
		return
	}
	if !IsSource(ev.Name) {
		return
	}
	if err := w.codebase.ScanFile(ev.Name); err != nil {
		log.Warningf("%s", err)
		return
	}
	w.notify(ev.Name, w.codebase.GetFile(ev.Name))
}

func (w *FileWatcher) notify(path string, info *FileInfo) {
	if w.onChange != nil {
		w.onChange(path, info)
	}
}

// Watch runs a FileWatcher until ctx is done.
func (c *Codebase) Watch(ctx context.Context, onChange ChangeFunc) error {
	w, err := NewFileWatcher(c, onChange)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}
