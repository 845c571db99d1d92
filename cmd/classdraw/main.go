package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"classdraw/config"
	"classdraw/logging"
)

var rootCmd = &cobra.Command{
	Use:           "classdraw",
	Short:         "UML class diagram save file tool",
	Long:          `classdraw validates, converts and exports UML class diagram save files`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

// app is the state shared by every subcommand once setup has run.
var app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func init() {
	rootCmd.Version = Version

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config-dir", ".", "directory holding "+config.FileName)
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command) error {
	flags := cmd.Flags()

	mode, _ := flags.GetString("color")
	switch strings.ToLower(mode) {
	case "on", "always":
		color.NoColor = false
	case "off", "never":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q", mode)
	}

	dir, _ := flags.GetString("config-dir")
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	app.cfg = cfg

	level := logging.LevelFromString(cfg.Logging.Level)
	verbosity, _ := flags.GetCount("verbose")
	quiet, _ := flags.GetBool("quiet")
	if verbosity > 0 || quiet {
		level = logging.LevelFromVerbosity(verbosity, quiet)
	}
	app.logger = logging.NewLogger(os.Stderr, level)
	return nil
}

// isTerminal reports whether f is attached to a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
