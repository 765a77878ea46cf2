package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matchvault/matchvault"
)

var moveTo string

var moveCmd = &cobra.Command{
	Use:   "move [id]...",
	Short: "Move snippets to another collection",
	Long: `Move transfers the snippets at the given path::index identities into
the target collection. Within each source file, higher ordinals are
moved first so earlier removals never shift later targets. Snippets
already in the target collection are skipped.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService(matchvault.WithMustExist(true))
		if err != nil {
			fatal("Failed to open store", err)
		}

		target := resolveCollection(service.Store().Root(), moveTo)
		moved, err := service.MoveMany(context.Background(), args, target)
		if err != nil {
			fmt.Printf("Moved %d snippet(s) before failure.\n", moved)
			fatal("Failed to move snippets", err)
		}

		fmt.Printf("Moved %d snippet(s) to %s.\n", moved, moveTo)
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
	moveCmd.Flags().StringVar(&moveTo, "to", "", "Target collection")
	moveCmd.MarkFlagRequired("to")
}
