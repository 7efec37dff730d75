package command

// root.go defines the root command for the cinelibri API server.
// Every subcommand reads its configuration from the environment (and .env when present).

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cinelibri",
	Short: "cinelibri - social cataloguing API for movies and books",
	Long: `cinelibri serves the CineLibri HTTP API: libraries of movies and books,
ratings and reviews, follows, an activity feed with likes and comments,
and notifications.

Running without a subcommand starts the server, same as "cinelibri serve".`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}
