package main

import (
	"fmt"

	"codeberg.org/chefbot/server/internal/storage"
	"github.com/spf13/cobra"
)

func runStats(cmd *cobra.Command, args []string) error {
	dbURL, err := databaseURL()
	if err != nil {
		return err
	}

	store, err := storage.NewClient(cmd.Context(), dbURL)
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := store.GetChunkCount(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d chunks indexed\n", count)

	return nil
}
