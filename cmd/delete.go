package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roadline-app/roadline/internal/config"
	"github.com/roadline-app/roadline/internal/docstore"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a roadmap document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		store, err := docstore.Open(cmd.Context(), cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
