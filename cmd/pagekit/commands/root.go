// Package commands implements the pagekit command line interface.
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wudi/pagekit/observability"
)

var (
	verbose bool
	quiet   bool

	logger observability.Logger = observability.NopLogger{}
)

var rootCmd = &cobra.Command{
	Use:   "pagekit",
	Short: "Split, merge, and compress PDF documents",
	Long: `pagekit transforms PDF documents from the command line.

split extracts page ranges into separate documents, merge concatenates
documents in argument order, and compress re-encodes every page as a JPEG
image to shrink the file. Compression is lossy and one-way: text becomes
pixels and is no longer selectable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = observability.NewConsole(logLevel(), os.Stderr)
	},
}

func logLevel() string {
	switch {
	case quiet:
		return "quiet"
	case verbose:
		return "debug"
	}
	return "info"
}

// signalContext returns a context cancelled on SIGINT or SIGTERM so a long
// operation stops at the next page or source boundary.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress log output and the progress bar")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
