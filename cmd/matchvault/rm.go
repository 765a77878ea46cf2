package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matchvault/matchvault"
)

var rmCmd = &cobra.Command{
	Use:   "rm [id]...",
	Short: "Delete snippets from the store",
	Long: `Rm removes the snippets at the given path::index identities.
Identities that no longer resolve are treated as already deleted.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService(matchvault.WithMustExist(true))
		if err != nil {
			fatal("Failed to open store", err)
		}

		deleted, err := service.DeleteMany(context.Background(), args)
		if err != nil {
			fatal("Failed to delete snippets", err)
		}

		fmt.Printf("Deleted %d snippet(s).\n", deleted)
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
