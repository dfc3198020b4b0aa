package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bilingual-pdf/generator"
	"bilingual-pdf/model"
	"bilingual-pdf/sefaria"
	"bilingual-pdf/utils"
)

var inspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect REFERENCE",
	Short: "Print the document built for a reference",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "json", "output format: json or yaml")
	RootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	ref := strings.Join(args, " ")

	// inspecting never compiles, so no engine is started
	client := utils.NewClient(utils.ClientOptions{RetryCount: cfg.RetryCount, Timeout: cfg.RequestTimeout})
	gen := generator.New(sefaria.NewClient(client, cfg.SefariaURL, cfg.EnglishVersion), nil, generator.Options{
		DropFootnotes: cfg.DropFootnotes,
	})

	doc, err := gen.Build(cmd.Context(), ref)
	if err != nil {
		return err
	}
	return writeDocument(cmd.OutOrStdout(), doc, inspectFormat)
}

func writeDocument(w io.Writer, doc *model.Document, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}
