package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roadline-app/roadline/internal/config"
	"github.com/roadline-app/roadline/internal/docstore"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new roadmap document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		store, err := docstore.Open(cmd.Context(), cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		id, err := store.Create(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}
		fmt.Println(id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
