package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/openserv-labs/skillsync/pkg/logger"
	"github.com/openserv-labs/skillsync/pkg/presenter"
	"github.com/openserv-labs/skillsync/pkg/registry"
	"github.com/openserv-labs/skillsync/pkg/syncer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// WatchConfig holds configuration for the watch command
type WatchConfig struct {
	IgnoreDirs   []string
	DebounceTime int
}

// NewWatchConfig creates a new WatchConfig with default values
func NewWatchConfig() *WatchConfig {
	return &WatchConfig{
		IgnoreDirs:   []string{".git", "node_modules"},
		DebounceTime: 500,
	}
}

// Validate validates the WatchConfig and returns an error if invalid
func (c *WatchConfig) Validate() error {
	if c.DebounceTime < 0 {
		return errors.Errorf("debounce time cannot be negative: %d", c.DebounceTime)
	}
	return nil
}

// skillEvent is a debounced change notification for one skill bundle
type skillEvent struct {
	Name string
	Time time.Time
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the repository skills tree and re-install on change",
	Long: `Watch monitors the repository's skills/ tree and re-installs a skill into
the user-level skills directory whenever its files change. Changes are
debounced so a burst of writes triggers a single install.

Press Ctrl+C to stop.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		config := getWatchConfigFromFlags(cmd)
		if err := config.Validate(); err != nil {
			presenter.Error(err, "Invalid configuration")
			os.Exit(1)
		}

		s := newSyncer(cmd)
		if err := s.EnsureSkillsDir(); err != nil {
			presenter.Error(err, "Failed to create skills directory")
			os.Exit(1)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			presenter.Warning("Cancellation requested, shutting down...")
			cancel()
		}()

		runWatchMode(ctx, s, config)
	},
}

func init() {
	defaults := NewWatchConfig()
	watchCmd.Flags().StringSliceP("ignore", "i", defaults.IgnoreDirs, "Directories to ignore")
	watchCmd.Flags().IntP("debounce", "d", defaults.DebounceTime, "Debounce time in milliseconds for file change events")
	addSyncFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

// getWatchConfigFromFlags extracts watch configuration from command flags
func getWatchConfigFromFlags(cmd *cobra.Command) *WatchConfig {
	config := NewWatchConfig()

	if ignoreDirs, err := cmd.Flags().GetStringSlice("ignore"); err == nil {
		config.IgnoreDirs = ignoreDirs
	}
	if debounceTime, err := cmd.Flags().GetInt("debounce"); err == nil {
		config.DebounceTime = debounceTime
	}

	return config
}

func runWatchMode(ctx context.Context, s *syncer.Syncer, config *WatchConfig) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		presenter.Error(err, "Failed to create file watcher")
		logger.G(ctx).WithError(err).Fatal("Failed to create file watcher")
	}
	defer watcher.Close()

	skillsRoot := s.RepoSkillsRoot()

	events := make(chan skillEvent)
	debouncedEvents := make(chan skillEvent)

	go debounceSkillEvents(ctx, events, debouncedEvents, time.Duration(config.DebounceTime)*time.Millisecond)

	// Re-install skills as debounced events arrive
	go func() {
		for {
			select {
			case event, ok := <-debouncedEvents:
				if !ok {
					return
				}
				logger.G(ctx).WithField("skill", event.Name).Debug("Change detected, re-installing")
				res, err := s.Install(event.Name)
				if err != nil {
					presenter.Error(err, fmt.Sprintf("Failed to install skill '%s'", event.Name))
					continue
				}
				presenter.Success(fmt.Sprintf("Re-installed skill '%s' to %s", event.Name, res.Target))
			case <-ctx.Done():
				return
			}
		}
	}()

	// Translate raw filesystem events into per-skill events
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				skipEvent := false
				for _, ignoreDir := range config.IgnoreDirs {
					if strings.Contains(event.Name, ignoreDir+string(os.PathSeparator)) {
						skipEvent = true
						break
					}
				}
				if skipEvent {
					continue
				}

				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}

				// New directories need watching too
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}

				name := skillForPath(skillsRoot, event.Name)
				if name == "" || !registry.Contains(name) {
					continue
				}

				events <- skillEvent{Name: name, Time: time.Now()}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				presenter.Error(err, "File watcher error")
				logger.G(ctx).WithError(err).Error("Error watching files")
			case <-ctx.Done():
				return
			}
		}
	}()

	// Watch the skills tree and all subdirectories
	err = filepath.Walk(skillsRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			for _, ignoreDir := range config.IgnoreDirs {
				if filepath.Base(path) == ignoreDir {
					return filepath.SkipDir
				}
			}
			logger.G(ctx).WithField("directory", path).Debug("Adding directory to watcher")
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		presenter.Error(err, "Failed to watch skills tree")
		logger.G(ctx).WithError(err).Fatal("Failed to watch skills tree")
	}

	presenter.Info(fmt.Sprintf("Watching %s for changes... Press Ctrl+C to stop", skillsRoot))

	<-ctx.Done()
}

// skillForPath maps a changed path to the skill bundle it belongs to, or ""
// when the path is outside the skills tree.
func skillForPath(skillsRoot, path string) string {
	rel, err := filepath.Rel(skillsRoot, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return strings.Split(filepath.ToSlash(rel), "/")[0]
}

// debounceSkillEvents collapses bursts of changes to the same skill into a
// single event after the delay passes without further changes.
func debounceSkillEvents(ctx context.Context, input <-chan skillEvent, output chan<- skillEvent, delay time.Duration) {
	pending := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-input:
			if !ok {
				for _, timer := range pending {
					timer.Stop()
				}
				return
			}
			if timer, exists := pending[event.Name]; exists {
				timer.Stop()
				delete(pending, event.Name)
			}

			eventCopy := event
			pending[event.Name] = time.AfterFunc(delay, func() {
				select {
				case output <- eventCopy:
				case <-ctx.Done():
				}
			})
		case <-ctx.Done():
			for _, timer := range pending {
				timer.Stop()
			}
			return
		}
	}
}
