package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roadline-app/roadline/internal/config"
	"github.com/roadline-app/roadline/internal/docstore"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List roadmap documents in the database",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	store, err := docstore.Open(cmd.Context(), cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	metas, err := store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if len(metas) == 0 {
		fmt.Println("no documents yet — create one with `roadline create <name>`")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUPDATED")
	for _, m := range metas {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.Name, m.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
