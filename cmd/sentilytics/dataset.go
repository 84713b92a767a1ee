package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kiranshivaraju/sentilytics/internal/table"
	"github.com/kiranshivaraju/sentilytics/pkg/models"
)

func newDatasetCmd(opts *options) *cobra.Command {
	var stages bool
	cmd := &cobra.Command{
		Use:   "dataset <file.csv|file.xlsx|file.json>",
		Short: "Analyze a CSV, XLSX or JSON dataset and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, t, err := readDataset(args[0])
			if err != nil {
				return err
			}
			svc, err := opts.service()
			if err != nil {
				return err
			}
			if stages {
				st, err := svc.AnalyzeStages(cmd.Context(), t)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), opts.format, st)
			}
			rep, err := svc.AnalyzeTable(cmd.Context(), source, t)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, rep)
		},
	}
	cmd.Flags().BoolVar(&stages, "stages", false, "print the raw per-stage output instead of the dashboard report")
	return cmd
}

// readDataset picks a parser by file extension. JSON files hold either an
// array of objects or {"data": [...]}.
func readDataset(path string) (string, *table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	var t *table.Table
	source := models.SourceCSV
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		source = models.SourceXLSX
		t, err = table.ReadXLSX(f)
	case ".json":
		source = models.SourceJSON
		t, err = readJSONRecords(f)
	default:
		t, err = table.ReadCSV(f)
	}
	if err != nil {
		return "", nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return source, t, nil
}

func readJSONRecords(f *os.File) (*table.Table, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%v: %w", err, table.ErrParse)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var wrapped struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil || wrapped.Data == nil {
			return nil, fmt.Errorf("expected an array or {\"data\": [...]}: %w", table.ErrParse)
		}
		raw = wrapped.Data
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("expected an array of objects: %w", table.ErrParse)
	}
	return table.FromRecords(records)
}
