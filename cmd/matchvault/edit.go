package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matchvault/matchvault"
	"github.com/matchvault/matchvault/pkg/core"
)

var (
	editTrigger   string
	editBody      string
	editMarkdown  bool
	editWord      bool
	editPropagate bool
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Replace a snippet's content",
	Long: `Edit rewrites the snippet at the given path::index identity.
Fields the store does not recognize are carried over unchanged.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService(matchvault.WithMustExist(true))
		if err != nil {
			fatal("Failed to open store", err)
		}

		format := core.FormatPlain
		if editMarkdown {
			format = core.FormatRich
		}
		draft := core.Draft{
			Trigger:       editTrigger,
			Body:          editBody,
			Format:        format,
			WholeWord:     editWord,
			PropagateCase: editPropagate,
		}

		if err := service.Update(context.Background(), args[0], draft); err != nil {
			fatal("Failed to update snippet", err)
		}

		fmt.Printf("Snippet %s updated.\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTrigger, "trigger", "t", "", "Trigger text")
	editCmd.Flags().StringVarP(&editBody, "body", "b", "", "Replacement body")
	editCmd.Flags().BoolVar(&editMarkdown, "markdown", false, "Store the body as markdown")
	editCmd.Flags().BoolVar(&editWord, "word", false, "Expand only on whole-word boundary")
	editCmd.Flags().BoolVar(&editPropagate, "propagate-case", false, "Propagate the trigger's case to the expansion")
	editCmd.MarkFlagRequired("trigger")
	editCmd.MarkFlagRequired("body")
}
