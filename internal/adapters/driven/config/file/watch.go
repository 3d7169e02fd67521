package file

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/plainbrief/plainbrief/internal/logger"
)

// PromptWatcher invalidates the prompt cache when files in the prompt
// directory change, so edits take effect without a restart.
type PromptWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchPrompts starts watching the store's prompt directory. The store's
// lazy init must have run (or the directory must exist) before watching.
func WatchPrompts(store *PromptStore) (*PromptWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(store.Dir()); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", store.Dir(), err)
	}

	w := &PromptWatcher{
		watcher: watcher,
		done:    make(chan struct{}),
	}

	go w.run(store)
	return w, nil
}

// run processes filesystem events until Close is called.
func (w *PromptWatcher) run(store *PromptStore) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".txt") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				logger.Debug("Prompt file changed: %s", event.Name)
				store.Reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Prompt watcher error: %v", err)

		case <-w.done:
			return
		}
	}
}

// Close stops watching.
func (w *PromptWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
