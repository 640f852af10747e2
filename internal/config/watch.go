package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watch sends a freshly read Config on configs each time the file at path is
// written or replaced. Read and watcher errors go to errs. The watcher stops
// when done is closed.
func Watch(path string, configs chan<- *Config, errs chan<- error, done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("can't create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return fmt.Errorf("can't watch %s: %w", path, err)
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// Editors often save by rename, which drops the watch.
				if event.Op&fsnotify.Rename != 0 {
					if err := watcher.Add(path); err != nil {
						select {
						case errs <- fmt.Errorf("can't rewatch %s: %w", path, err):
						case <-done:
							return
						}
					}
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				c, err := Read(path)
				if err != nil {
					select {
					case errs <- err:
					case <-done:
						return
					}
					continue
				}
				select {
				case configs <- c:
				case <-done:
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}()
	return nil
}
