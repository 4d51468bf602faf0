package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/wudi/pagekit/compress"
	"github.com/wudi/pagekit/document/pdfcpucodec"
	"github.com/wudi/pagekit/raster"
)

var (
	compressQuality float64
	compressScale   float64
	compressOutput  string
)

var compressCmd = &cobra.Command{
	Use:   "compress <input.pdf>",
	Short: "Shrink a document by re-encoding its pages as JPEG images",
	Long: `Compress renders every page, re-encodes it as a JPEG image, and rebuilds
the document from the images. The result is smaller but lossy: text and
vector graphics become pixels and are no longer selectable or searchable.

Quality is a value in (0, 1]; lower is smaller. Scale multiplies the
render resolution, and the output pages are scale times the original page
size.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompress,
}

func init() {
	compressCmd.Flags().Float64VarP(&compressQuality, "quality", "q", compress.DefaultQuality,
		"JPEG quality in (0,1]")
	compressCmd.Flags().Float64VarP(&compressScale, "scale", "s", compress.DefaultScale,
		"render scale, output page size is scale times the original")
	compressCmd.Flags().StringVarP(&compressOutput, "output", "o", "",
		"output path (default <input>_compressed.pdf)")
	rootCmd.AddCommand(compressCmd)
}

func runCompress(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	opts := []compress.Option{compress.WithLogger(logger)}
	var bar *progressbar.ProgressBar
	if !quiet {
		opts = append(opts, compress.WithProgress(func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetWidth(40),
					progressbar.OptionSetDescription("compressing"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
				)
			}
			_ = bar.Set(done)
		}))
	}

	c := compress.New(pdfcpucodec.New(), raster.NewFitzRenderer(), opts...)
	out, err := c.Compress(ctx, src, compress.Config{
		Quality: compressQuality,
		Scale:   compressScale,
	})
	if err != nil {
		return err
	}

	dest := compressOutput
	if dest == "" {
		base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
		dest = base + "_compressed.pdf"
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s (%.0f%% of original)\n",
		dest, formatBytes(int64(len(src))), formatBytes(int64(len(out))),
		100*float64(len(out))/float64(len(src)))
	return nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
