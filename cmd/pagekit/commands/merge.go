package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wudi/pagekit/document/pdfcpucodec"
	"github.com/wudi/pagekit/merge"
	"github.com/wudi/pagekit/observability"
)

var (
	mergeOutput  string
	mergeService string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <a.pdf> <b.pdf> [more.pdf...]",
	Short: "Concatenate documents into one",
	Long: `Merge concatenates two or more documents into a single document, keeping
pages in argument order. A file listed twice with the same name and size is
merged only once.

With --service the work is delegated to a merge service over HTTP instead
of running locally.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged.pdf", "path of the merged document")
	mergeCmd.Flags().StringVar(&mergeService, "service", "", "base URL of a merge service")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	seen := make(map[string]bool)
	sources := make([][]byte, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		key := fmt.Sprintf("%s|%d", filepath.Base(path), len(data))
		if seen[key] {
			logger.Warn("skipping duplicate source", observability.String("file", path))
			continue
		}
		seen[key] = true
		sources = append(sources, data)
	}

	var engine merge.Engine
	if mergeService != "" {
		engine = merge.NewServiceClient(mergeService, merge.WithClientLogger(logger))
	} else {
		engine = merge.New(pdfcpucodec.New(), merge.WithLogger(logger))
	}

	out, err := engine.Merge(ctx, sources)
	if err != nil {
		return err
	}
	if err := os.WriteFile(mergeOutput, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", mergeOutput, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), mergeOutput)
	return nil
}
