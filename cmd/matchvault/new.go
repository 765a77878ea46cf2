package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create an empty collection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService()
		if err != nil {
			fatal("Failed to open store", err)
		}

		path, err := service.CreateCollection(context.Background(), args[0])
		if err != nil {
			fatal("Failed to create collection", err)
		}

		fmt.Printf("Collection created: %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
