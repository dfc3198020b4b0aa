package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bilingual-pdf/generator"
	"bilingual-pdf/logger"
	"bilingual-pdf/utils"
)

type renderArgs struct {
	outputPath string
	format     string
}

var rArgs renderArgs

var renderCmd = &cobra.Command{
	Use:   "render REFERENCE",
	Short: "Render a reference to a file",
	Long:  "Render a reference to PDF, EPUB, LaTeX source, HTML or plain text. The reference may be given unquoted.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&rArgs.outputPath, "output-path", "o", ".", "output directory")
	renderCmd.Flags().StringVarP(&rArgs.format, "format", "f", "pdf", "output format: pdf, epub, tex, html or txt")
	RootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	ref := strings.Join(args, " ")

	gen, cleanup, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := generate(cmd.Context(), gen, rArgs.format, ref)
	if err != nil {
		return err
	}

	path, err := writeResult(rArgs.outputPath, res)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func generate(ctx context.Context, gen *generator.Generator, format, ref string) (*generator.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	switch format {
	case "pdf":
		return gen.PDF(ctx, ref)
	case "epub":
		return gen.EPUB(ctx, ref)
	case "tex":
		return gen.LaTeX(ctx, ref)
	case "html":
		return gen.HTML(ctx, ref)
	case "txt":
		return gen.Text(ctx, ref)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// writeResult stores res under dir with a file-system-safe name.
func writeResult(dir string, res *generator.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	ext := filepath.Ext(res.Filename)
	path := filepath.Join(dir, utils.CleanFileName(strings.TrimSuffix(res.Filename, ext))+ext)
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("wrote file", "path", path, "bytes", len(res.Data), "pages", res.Pages)
	return path, nil
}
