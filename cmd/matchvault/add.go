package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matchvault/matchvault/pkg/core"
)

var (
	addTrigger   string
	addBody      string
	addFile      string
	addMarkdown  bool
	addWord      bool
	addPropagate bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a snippet",
	Long:  `Add appends a snippet to a match file, creating the file if needed.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService()
		if err != nil {
			fatal("Failed to open store", err)
		}

		format := core.FormatPlain
		if addMarkdown {
			format = core.FormatRich
		}
		draft := core.Draft{
			Trigger:       addTrigger,
			Body:          addBody,
			Format:        format,
			WholeWord:     addWord,
			PropagateCase: addPropagate,
		}

		path := resolveCollection(service.Store().Root(), addFile)
		if err := service.Create(context.Background(), path, draft); err != nil {
			fatal("Failed to add snippet", err)
		}

		fmt.Printf("Snippet '%s' added.\n", addTrigger)
	},
}

// resolveCollection turns a collection argument into a document path.
// Empty stays empty (the service picks the default collection); a
// relative path is anchored at the store root.
func resolveCollection(root, file string) string {
	if file == "" {
		return ""
	}
	if filepath.Ext(file) == "" {
		file += ".yml"
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(root, file)
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTrigger, "trigger", "t", "", "Trigger text")
	addCmd.Flags().StringVarP(&addBody, "body", "b", "", "Replacement body")
	addCmd.Flags().StringVarP(&addFile, "file", "f", "", "Collection to add to (default: base.yml)")
	addCmd.Flags().BoolVar(&addMarkdown, "markdown", false, "Store the body as markdown")
	addCmd.Flags().BoolVar(&addWord, "word", false, "Expand only on whole-word boundary")
	addCmd.Flags().BoolVar(&addPropagate, "propagate-case", false, "Propagate the trigger's case to the expansion")
	addCmd.MarkFlagRequired("trigger")
	addCmd.MarkFlagRequired("body")
}
