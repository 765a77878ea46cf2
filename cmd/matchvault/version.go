package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matchvault/matchvault"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of matchvault",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("matchvault version %s\n", matchvault.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
