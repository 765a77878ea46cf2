package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/matchvault/matchvault"
	"github.com/matchvault/matchvault/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream change events for the store",
	Long:  `Watch prints a line for every match file created, modified or deleted under the store root until interrupted.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService(matchvault.WithMustExist(true))
		if err != nil {
			fatal("Failed to open store", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := service.Watch(ctx)
		if err != nil {
			fatal("Failed to start watching", err)
		}

		fmt.Printf("Watching %s\n", service.Store().Root())
		for event := range events {
			stamp := time.Unix(event.Timestamp, 0).Format(time.TimeOnly)
			fmt.Printf("%s %-7s %s\n", stamp, eventLabel(event.Type), event.Path)
		}
	},
}

func eventLabel(t core.EventType) string {
	switch t {
	case core.EventCreate:
		return "create"
	case core.EventModify:
		return "modify"
	case core.EventDelete:
		return "delete"
	default:
		return "unknown"
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
