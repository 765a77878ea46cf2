package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var collectionsJSON bool

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List the collections (match files) in the store",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService()
		if err != nil {
			fatal("Failed to open store", err)
		}

		collections, err := service.ListCollections(context.Background())
		if err != nil {
			fatal("Failed to list collections", err)
		}

		if collectionsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(collections); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, c := range collections {
			fmt.Printf("%s\t%s\n", c.Label, c.Relative)
		}
	},
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
	collectionsCmd.Flags().BoolVar(&collectionsJSON, "json", false, "Output in JSON format")
}
