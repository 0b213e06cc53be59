package cmd

import (
	"path/filepath"
	"time"

	"pplc/report"

	"github.com/fsnotify/fsnotify"
)

// rebuildDelay is how long the watcher waits after the last change before
// rebuilding, so editors that write in several steps trigger one rebuild.
const rebuildDelay = 250 * time.Millisecond

// watchLoop compiles the module, then recompiles whenever one of its source
// files changes.  It only returns on watcher failure.
func (c *Compiler) watchLoop() int {
	c.Compile()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		report.ReportFatal("unable to watch `%s`: %s", c.rootPath, err)
		return 1
	}
	defer watcher.Close()

	if err := watcher.Add(c.rootPath); err != nil {
		report.ReportFatal("unable to watch `%s`: %s", c.rootPath, err)
		return 1
	}

	report.ReportVerbose("watching `%s` for changes", c.rootPath)

	var timer *time.Timer
	rebuild := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return 1
			}

			if !relevantChange(event) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}

			timer = time.AfterFunc(rebuildDelay, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return 1
			}

			report.ReportVerbose("watch error: %s", err)

		case <-rebuild:
			report.ReportVerbose("change detected, rebuilding")
			c.Compile()
		}
	}
}

// relevantChange reports whether the event should trigger a rebuild.
func relevantChange(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}

	ext := filepath.Ext(event.Name)
	return ext == ".ppl" || filepath.Base(event.Name) == "ppl.toml"
}
