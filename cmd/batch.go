package cmd

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bilingual-pdf/logger"
	"bilingual-pdf/utils"
)

type batchArgs struct {
	outputPath string
	start      int
	end        int
	keepGoing  bool
}

var bArgs batchArgs

var batchCmd = &cobra.Command{
	Use:   "batch CSV",
	Short: "Render one PDF per chapter listed in a CSV file",
	Long: `Render one PDF per chapter listed in a CSV file. After a header row,
the second and third columns of each row are the book and the chapter.
Rows are numbered from 1 and --start/--end are inclusive.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&bArgs.outputPath, "output-path", "o", ".", "output directory")
	batchCmd.Flags().IntVar(&bArgs.start, "start", 1, "first row")
	batchCmd.Flags().IntVar(&bArgs.end, "end", 929, "last row")
	batchCmd.Flags().BoolVar(&bArgs.keepGoing, "keep-going", false, "continue after a failed row")
	RootCmd.AddCommand(batchCmd)
}

type batchEntry struct {
	Row     int
	Book    string
	Chapter string
}

func (e batchEntry) Ref() string {
	return e.Book + " " + e.Chapter
}

func (e batchEntry) FileName() string {
	return utils.CleanFileName(fmt.Sprintf("%s_Chapter_%s", e.Book, e.Chapter)) + ".pdf"
}

// readBatch returns the rows of r numbered start..end.
func readBatch(r io.Reader, start, end int) ([]batchEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	entries := make([]batchEntry, 0)
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row, err)
		}
		if row < start || row > end {
			continue
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("row %d: expected at least 3 columns, got %d", row, len(record))
		}
		entries = append(entries, batchEntry{
			Row:     row,
			Book:    strings.TrimSpace(record[1]),
			Chapter: strings.TrimSpace(record[2]),
		})
	}
	return entries, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer file.Close()

	entries, err := readBatch(file, bArgs.start, bArgs.end)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(bArgs.outputPath, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	gen, cleanup, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	failed := 0
	for _, entry := range entries {
		res, err := generate(cmd.Context(), gen, "pdf", entry.Ref())
		if err == nil {
			path := filepath.Join(bArgs.outputPath, entry.FileName())
			err = os.WriteFile(path, res.Data, 0o644)
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", entry.Book, entry.Chapter, path)
				continue
			}
		}
		if !bArgs.keepGoing {
			return fmt.Errorf("row %d: %w", entry.Row, err)
		}
		failed++
		logger.Error("row failed", "row", entry.Row, "ref", entry.Ref(), "error", err)
	}

	logger.Info("batch finished", "rows", len(entries), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d rows failed", failed, len(entries))
	}
	return nil
}
