package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roadline-app/roadline/internal/config"
	"github.com/roadline-app/roadline/internal/docstore"
	"github.com/roadline-app/roadline/internal/roadmap"
	"github.com/roadline-app/roadline/internal/timeline"
	"github.com/roadline-app/roadline/internal/tui"
)

var openCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open a document in the interactive timeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	openCmd.Flags().String("zoom", "", "initial zoom level: week or month")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	store, err := docstore.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	docID := args[0]
	data, name, err := store.Load(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	doc := roadmap.NewStore(data)

	zoomName, _ := cmd.Flags().GetString("zoom")
	if zoomName == "" {
		zoomName = cfg.DefaultZoom
	}
	zoom := timeline.ParseZoom(zoomName)

	model := tui.NewAppModel(doc, name, zoom)
	model.ShowMonthColors = cfg.ShowMonthColors
	model.Reload = func() (*roadmap.Data, error) {
		data, _, err := store.Load(context.Background(), docID)
		return data, err
	}

	var watcher *docstore.Watcher
	persist := docstore.Store(store)
	if cfg.WatchExternalEdit {
		watcher, err = docstore.NewWatcher(store.Path())
		if err != nil {
			return fmt.Errorf("failed to watch database: %w", err)
		}
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("failed to watch database: %w", err)
		}
		defer watcher.Stop()
		// Suppress our own autosaves from the external-change feed.
		persist = &pausingStore{Store: store, watcher: watcher}
	}

	saver := docstore.NewAutosaver(persist, doc, docID, name, cfg.AutosaveInterval())
	model.OnMutate = saver.Touch
	model.SaveStatus = func() (string, error) {
		state, err := saver.State()
		return state.String(), err
	}

	p := tui.NewProgram(model)
	if watcher != nil {
		go func() {
			for t := range watcher.Changes {
				p.Send(tui.MsgExternalChange{At: t})
			}
		}()
	}

	_, runErr := p.Run()

	// Flush any pending edits before tearing down.
	if err := saver.Close(ctx); err != nil {
		return fmt.Errorf("failed to save on exit: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	return nil
}

// pausingStore pauses the database watcher around writes so the watcher only
// reports changes made by other processes.
type pausingStore struct {
	docstore.Store
	watcher *docstore.Watcher
}

func (p *pausingStore) Save(ctx context.Context, id string, data *roadmap.Data, name string) error {
	p.watcher.Pause()
	defer p.watcher.Resume()
	return p.Store.Save(ctx, id, data, name)
}
