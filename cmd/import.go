package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roadline-app/roadline/internal/config"
	"github.com/roadline-app/roadline/internal/docstore"
	"github.com/roadline-app/roadline/internal/roadmap"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a TOML or JSON file as a new document",
	Long: `Import reads a roadmap document from a TOML or JSON file (by extension)
and stores it as a new document. The document name defaults to the file's
base name; override it with --name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		path := args[0]

		var data *roadmap.Data
		var err error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			data, err = docstore.ImportTOML(path)
		case ".json":
			data, err = docstore.ImportJSON(path)
		default:
			return fmt.Errorf("unsupported file type %q (want .toml or .json)", filepath.Ext(path))
		}
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		store, err := docstore.Open(cmd.Context(), cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		id, err := store.Create(cmd.Context(), name)
		if err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}
		if err := store.Save(cmd.Context(), id, data, name); err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}
		fmt.Println(id)
		return nil
	},
}

func init() {
	importCmd.Flags().String("name", "", "document name (default: file base name)")
	rootCmd.AddCommand(importCmd)
}
