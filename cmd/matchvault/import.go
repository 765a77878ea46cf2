package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var importMergeInto string

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import an external match file into the store",
	Long: `Import brings an external match file into the store. By default the
file is copied in under a name that never collides with an existing
collection; with --merge its snippets are appended to that collection
instead.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService()
		if err != nil {
			fatal("Failed to open store", err)
		}

		mergeInto := ""
		if importMergeInto != "" {
			mergeInto = resolveCollection(service.Store().Root(), importMergeInto)
		}

		count, target, err := service.Import(context.Background(), args[0], mergeInto)
		if err != nil {
			fatal("Failed to import", err)
		}

		fmt.Printf("Imported %d snippet(s) into %s.\n", count, target)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importMergeInto, "merge", "", "Append into this collection instead of copying the file in")
}
