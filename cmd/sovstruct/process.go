package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sovstruct/internal/config"
	"github.com/ukaji3/sovstruct/pkg/sovstruct"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/export"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/output"
)

var (
	outputPath    string
	exportPath    string
	exportCSVPath string
	noAI          bool
)

func newProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [workbook.xlsx|sov.csv]",
		Short: "Process a schedule-of-values workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runProcess,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().String("format", config.DefaultOutputFormat, "Output format: json, yaml, table")
	cmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write the standardized table to this xlsx file")
	cmd.Flags().StringVar(&exportCSVPath, "export-csv", "", "Write the standardized table to this CSV file")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "Skip the completion service and use rule-based fallbacks")
	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	opts := sovstruct.Options{Logger: logger}
	if !noAI {
		opts.Completer = config.NewCompleter(cfg.Completion)
	}

	result, err := sovstruct.ProcessFile(cmd.Context(), inputPath, opts)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	var buf bytes.Buffer
	if err := output.Write(&buf, result, format, cfg.Output.Pretty); err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
		return err
	}

	if exportPath != "" {
		if err := export.SaveXLSX(exportPath, result.Records); err != nil {
			return fmt.Errorf("failed to export workbook: %w", err)
		}
		logger.Info("exported standardized workbook", "path", exportPath, "rows", len(result.Records))
	}

	if exportCSVPath != "" {
		if err := writeCSVFile(exportCSVPath, result.Records); err != nil {
			return fmt.Errorf("failed to export csv: %w", err)
		}
		logger.Info("exported standardized csv", "path", exportCSVPath, "rows", len(result.Records))
	}

	return nil
}

func writeCSVFile(path string, records []models.MappedRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
