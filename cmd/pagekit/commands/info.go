package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wudi/pagekit/document/pdfcpucodec"
)

var infoCmd = &cobra.Command{
	Use:   "info <input.pdf>",
	Short: "Show page count, version, and size of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	doc, err := pdfcpucodec.New().Load(ctx, src)
	if err != nil {
		return err
	}

	info := doc.Info()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pages:   %d\n", info.PageCount)
	fmt.Fprintf(out, "version: %s\n", info.Version)
	fmt.Fprintf(out, "size:    %s\n", formatBytes(info.Bytes))
	return nil
}
