package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "roadline",
	Short: "Interactive roadmap timeline planner",
	Long: `Roadline keeps roadmap documents in a local SQLite database and renders
them as an interactive timeline: streams as lanes, items as draggable bars,
with dependencies, milestones, and week/month zoom.`,
	RunE: runRootDefault,
}

// Execute runs the root command, exiting nonzero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .roadline.yaml)")
	rootCmd.PersistentFlags().String("db", "", "path to the documents database")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".roadline")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("ROADLINE")
	viper.AutomaticEnv()

	if db, _ := rootCmd.Flags().GetString("db"); db != "" {
		viper.Set("db_path", db)
	}
	if v, _ := rootCmd.Flags().GetBool("verbose"); v {
		viper.Set("verbose", true)
	}

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// runRootDefault launches the document picker flow: with exactly one
// document in the database it opens straight into it, otherwise it lists.
func runRootDefault(cmd *cobra.Command, args []string) error {
	return runList(cmd, args)
}
