package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matchvault/matchvault"
	"github.com/matchvault/matchvault/pkg/core"
)

var (
	rootDir string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "matchvault",
	Short: "Manage espanso text-expansion snippets across YAML match files",
	Long: `matchvault edits a directory tree of espanso match files in place.
Snippets are addressed as path::index and every edit preserves the YAML
content matchvault does not understand.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	viper.SetEnvPrefix("matchvault")
	viper.AutomaticEnv()
	viper.BindEnv("root")

	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Store root directory (default: espanso match directory, or $MATCHVAULT_ROOT)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// resolveRoot returns the store root: the --root flag, then the
// MATCHVAULT_ROOT environment variable, then the platform default.
func resolveRoot() string {
	if rootDir != "" {
		return rootDir
	}
	if env := viper.GetString("root"); env != "" {
		return env
	}
	return ""
}

func openService(opts ...matchvault.Option) (*core.Service, error) {
	opts = append(opts, matchvault.WithLogger(slog.Default()))
	return matchvault.Open(resolveRoot(), opts...)
}
