package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matchvault/matchvault/pkg/core"
)

var (
	listJSON   bool
	listFilter string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all snippets in the store",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService()
		if err != nil {
			fatal("Failed to open store", err)
		}

		snippets, exists, err := service.ListAll(context.Background())
		if err != nil {
			fatal("Failed to list snippets", err)
		}
		if !exists {
			fmt.Fprintf(os.Stderr, "store not initialized: %s\n", service.Store().Root())
			os.Exit(1)
		}

		var filtered []core.Snippet
		for _, sn := range snippets {
			if listFilter != "" && sn.Label != listFilter {
				continue
			}
			filtered = append(filtered, sn)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, sn := range filtered {
			fmt.Printf("%s\t%s\t[%s]\n", sn.ID, sn.Trigger, sn.Label)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listFilter, "collection", "", "Filter snippets by collection label")
}
