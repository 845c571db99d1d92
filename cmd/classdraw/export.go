package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"classdraw/export"
)

var (
	exportFormat      string
	exportOutput      string
	exportInputFormat string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.FormatPlantUML), "text format ("+formatNames()+")")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportInputFormat, "input-format", "", "save encoding (json|yaml|msgpack)")
}

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export a save file as PlantUML or Mermaid text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		ed, err := openEditor(args[0], exportInputFormat)
		if err != nil {
			return err
		}
		if invalid := ed.Invalid(); len(invalid) > 0 {
			app.logger.Warn("exporting diagram with invalid elements", "count", len(invalid))
		}

		out, err := exporter.Export(ed.Nodes())
		if err != nil {
			return fmt.Errorf("export %s: %w", exporter.GetFormatName(), err)
		}
		return writeOutput(cmd.OutOrStdout(), exportOutput, []byte(out))
	},
}

func formatNames() string {
	var names []string
	for _, f := range export.GetAvailableFormats() {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}
