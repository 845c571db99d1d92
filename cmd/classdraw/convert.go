package main

import (
	"bytes"

	"github.com/spf13/cobra"

	"classdraw/export"
	"classdraw/importer"
)

var (
	convertTo          string
	convertInputFormat string
	convertIndent      int
)

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "", "target encoding (json|yaml|msgpack), guessed from OUTPUT or taken from the config")
	convertCmd.Flags().StringVar(&convertInputFormat, "input-format", "", "source encoding (json|yaml|msgpack)")
	convertCmd.Flags().IntVar(&convertIndent, "indent", -1, "indent width for json and yaml (default from config)")
}

var convertCmd = &cobra.Command{
	Use:   "convert INPUT [OUTPUT]",
	Short: "Re-encode a save file, upgrading legacy saves to the current version",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var output string
		if len(args) == 2 {
			output = args[1]
		}
		format, err := targetFormat(output)
		if err != nil {
			return err
		}

		ed, err := openEditor(args[0], convertInputFormat)
		if err != nil {
			return err
		}

		indent := app.cfg.Save.Indent
		if convertIndent >= 0 {
			indent = convertIndent
		}
		var buf bytes.Buffer
		if err := export.WriteSaveFile(&buf, ed.Document(), format, export.WithIndent(indent)); err != nil {
			return err
		}
		app.logger.Info("converted", "input", args[0], "format", format)
		return writeOutput(cmd.OutOrStdout(), output, buf.Bytes())
	},
}

// targetFormat resolves the output encoding: --to, then the output
// extension, then the configured default.
func targetFormat(output string) (importer.Format, error) {
	if convertTo != "" {
		return importer.ParseFormat(convertTo)
	}
	if output != "" {
		return importer.FormatFromPath(output), nil
	}
	return app.cfg.SaveFormat(), nil
}
