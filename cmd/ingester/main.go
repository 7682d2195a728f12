package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/chefbot/server/internal/config"
	"codeberg.org/chefbot/server/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	sourcePath string
	clearFirst bool
)

var rootCmd = &cobra.Command{
	Use:   "ingester",
	Short: "Loads the cookbook into the recipe index",
	Long: `ingester reads the cookbook, splits it into overlapping chunks,
embeds them and stores them in the book_chunks table that the chat
server searches.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		env := os.Getenv("ENVIRONMENT")
		logger.Replace(logger.New(env, os.Getenv("LOG_FILE")))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Chunk, embed and store the cookbook",
	Example: `  ingester book --pdf ./data/recetario.pdf --clear
  ingester book --config ingest.yaml`,
	Args: cobra.NoArgs,
	RunE: runBook,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print how many chunks are indexed",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "ingest.yaml", "ingestion config file (defaults apply when missing)")

	bookCmd.Flags().StringVar(&sourcePath, "pdf", "", "cookbook PDF or directory of page files (overrides config)")
	bookCmd.Flags().BoolVar(&clearFirst, "clear", false, "delete existing chunks before ingesting")

	rootCmd.AddCommand(bookCmd, statsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.FatalErr(err, "ingestion failed")
	}
}

// database url from the same environment the server reads
func databaseURL() (string, error) {
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		return "", err
	}

	return cfg.DatabaseURL, nil
}
