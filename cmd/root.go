package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bilingual-pdf/config"
	"bilingual-pdf/engine"
	"bilingual-pdf/generator"
	"bilingual-pdf/latex"
	"bilingual-pdf/logger"
	"bilingual-pdf/sefaria"
	"bilingual-pdf/utils"
)

var RootCmd = &cobra.Command{
	Use:   "bilingual-pdf",
	Short: "Typeset Hebrew/English scripture side by side",
	Long: `bilingual-pdf fetches a reference from Sefaria and lays it out verse by
verse: Hebrew with its gematria numeral, English below.

Examples:
  bilingual-pdf render "Mishnah Berachot 3:2-4:1"
  bilingual-pdf render Genesis 1 --format epub -o ./out
  bilingual-pdf inspect "Psalms 23" --format yaml
  bilingual-pdf batch chapters.csv --start 1 --end 50
  bilingual-pdf serve`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile string
	v       = viper.New()
	cfg     *config.Config
)

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./"+config.DefaultConfigFile+")")
	flags.Bool("debug", false, "enable debug logging")
	flags.Bool("json-logs", false, "log as JSON lines")
	flags.String("engine", "", "typesetting engine: latexonline, xelatex or chrome")
	flags.Bool("drop-footnotes", false, "remove translator footnotes from the English text")

	_ = v.BindPFlag("debug", flags.Lookup("debug"))
	_ = v.BindPFlag("json_logs", flags.Lookup("json-logs"))
	_ = v.BindPFlag("engine", flags.Lookup("engine"))
	_ = v.BindPFlag("drop_footnotes", flags.Lookup("drop-footnotes"))
}

func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	config.Prepare(v, cfgFile)

	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded

	logger.Init(logger.Options{Debug: cfg.Debug, JSON: cfg.JSONLogs})
	logger.Debug("config loaded", "engine", cfg.Engine, "sefaria_url", cfg.SefariaURL)
	return nil
}

// newGenerator wires the configured text source and engine. The returned
// func releases the engine.
func newGenerator(cfg *config.Config) (*generator.Generator, func(), error) {
	client := utils.NewClient(utils.ClientOptions{
		RetryCount: cfg.RetryCount,
		Timeout:    cfg.RequestTimeout,
	})
	source := sefaria.NewClient(client, cfg.SefariaURL, cfg.EnglishVersion)

	fontDir := cfg.FontDir
	cleanup := func() {}
	var compiler engine.Compiler
	switch cfg.Engine {
	case config.EngineLatexOnline:
		compiler = engine.NewLatexOnline(utils.NewClient(utils.ClientOptions{
			RetryCount: cfg.RetryCount,
			Timeout:    cfg.CompileTimeout,
		}), cfg.LatexOnlineURL)
	case config.EngineXeLaTeX:
		// xelatex runs in a scratch directory
		abs, err := filepath.Abs(fontDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve font dir: %w", err)
		}
		fontDir = abs
		compiler = engine.NewXeLaTeX(cfg.XeLaTeXPath)
	case config.EngineChrome:
		chrome := engine.NewChrome(cfg.ChromePath)
		compiler = chrome
		cleanup = func() { _ = chrome.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}

	gen := generator.New(source, compiler, generator.Options{
		Latex: latex.Options{
			FontDir:     fontDir,
			HebrewFont:  cfg.HebrewFont,
			EnglishFont: cfg.EnglishFont,
		},
		DropFootnotes:  cfg.DropFootnotes,
		CompileTimeout: cfg.CompileTimeout,
	})
	return gen, cleanup, nil
}
