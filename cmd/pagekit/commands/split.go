package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wudi/pagekit/document/pdfcpucodec"
	"github.com/wudi/pagekit/observability"
	"github.com/wudi/pagekit/pagerange"
	"github.com/wudi/pagekit/split"
)

var (
	splitRanges string
	splitOutDir string
)

var splitCmd = &cobra.Command{
	Use:   "split <input.pdf>",
	Short: "Extract page ranges into separate documents",
	Long: `Split extracts each requested page range into its own document.

Ranges are 1-based and inclusive. Separate them with commas, semicolons, or
newlines: "1-3, 5; 7-9" produces three documents. A bare number selects a
single page. Bounds outside the document are clamped to it. Each output is
named <input>_pages_<from>-<to>.pdf.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().StringVarP(&splitRanges, "ranges", "r", "", `page ranges, e.g. "1-3, 5" (required)`)
	splitCmd.Flags().StringVarP(&splitOutDir, "out-dir", "d", ".", "directory for the output documents")
	splitCmd.MarkFlagRequired("ranges")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	ranges, err := pagerange.Parse(splitRanges)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	codec := pdfcpucodec.New()
	doc, err := codec.Load(ctx, src)
	if err != nil {
		return err
	}
	for i, r := range ranges {
		clamped := pagerange.Normalize(r, doc.PageCount())
		if clamped != r {
			logger.Warn("range clamped to document bounds",
				observability.String("requested", r.String()),
				observability.String("clamped", clamped.String()))
		}
		ranges[i] = clamped
	}

	splitter := split.New(codec, split.WithLogger(logger))
	results, splitErr := splitter.Split(ctx, src, ranges)

	base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	for _, res := range results {
		name := filepath.Join(splitOutDir, res.OutputName(base))
		if err := os.WriteFile(name, res.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return splitErr
}
