package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matchvault/matchvault"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [id]...",
	Short: "Export snippets to a standalone match file",
	Long: `Export copies the snippets at the given path::index identities into a
new match file outside the store.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService(matchvault.WithMustExist(true))
		if err != nil {
			fatal("Failed to open store", err)
		}

		name := filepath.Base(exportOut)
		staged, count, err := service.ExportMany(context.Background(), args, name)
		if err != nil {
			fatal("Failed to export snippets", err)
		}

		if err := moveIntoPlace(staged, exportOut); err != nil {
			os.Remove(staged)
			fatal("Failed to write export file", err)
		}

		fmt.Printf("Exported %d snippet(s) to %s.\n", count, exportOut)
	},
}

// moveIntoPlace relocates the staged export. Rename fails across
// filesystems, so fall back to copy-and-remove.
func moveIntoPlace(staged, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if err := os.Rename(staged, target); err == nil {
		return nil
	}

	src, err := os.Open(staged)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	return os.Remove(staged)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Destination file")
	exportCmd.MarkFlagRequired("out")
}
