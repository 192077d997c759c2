package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roadline-app/roadline/internal/config"
	"github.com/roadline-app/roadline/internal/docstore"
	"github.com/roadline-app/roadline/internal/roadmap"
	"github.com/roadline-app/roadline/internal/svg"
	"github.com/roadline-app/roadline/internal/timeline"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a document to SVG, TOML, or JSON",
}

var exportSVGCmd = &cobra.Command{
	Use:   "svg <id> <file>",
	Short: "Render a document as an SVG timeline",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		store, err := docstore.Open(cmd.Context(), cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		data, _, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load document: %w", err)
		}

		zoomName, _ := cmd.Flags().GetString("zoom")
		if zoomName == "" {
			zoomName = cfg.DefaultZoom
		}

		out, err := svg.Render(data, svg.Options{
			Zoom:            timeline.ParseZoom(zoomName),
			ShowMonthColors: cfg.ShowMonthColors,
			Today:           time.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to render SVG: %w", err)
		}
		if err := os.WriteFile(args[1], out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[1], err)
		}
		return nil
	},
}

var exportTOMLCmd = &cobra.Command{
	Use:   "toml <id> <file>",
	Short: "Export a document as TOML",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExportFile(cmd, args, docstore.ExportTOML)
	},
}

var exportJSONCmd = &cobra.Command{
	Use:   "json <id> <file>",
	Short: "Export a document as JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExportFile(cmd, args, docstore.ExportJSON)
	},
}

func runExportFile(cmd *cobra.Command, args []string, write func(string, *roadmap.Data) error) error {
	cfg := config.Load()

	store, err := docstore.Open(cmd.Context(), cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	data, _, err := store.Load(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	if err := write(args[1], data); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[1], err)
	}
	return nil
}

func init() {
	exportSVGCmd.Flags().String("zoom", "", "zoom level: week or month")
	exportCmd.AddCommand(exportSVGCmd)
	exportCmd.AddCommand(exportTOMLCmd)
	exportCmd.AddCommand(exportJSONCmd)
	rootCmd.AddCommand(exportCmd)
}
