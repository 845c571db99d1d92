package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"classdraw/diagram"
)

var errInvalidDiagrams = errors.New("validation failed")

var (
	validateJobs   int
	validateFormat string
)

func init() {
	validateCmd.Flags().IntVarP(&validateJobs, "jobs", "j", 0, "files validated in parallel (0 = GOMAXPROCS)")
	validateCmd.Flags().StringVar(&validateFormat, "input-format", "", "save encoding (json|yaml|msgpack), guessed from the extension by default")
}

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate every element of one or more save files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reports, err := validateFiles(cmd, args)
		if err != nil {
			return err
		}
		failed := printReports(cmd.OutOrStdout(), reports)
		if failed > 0 {
			return fmt.Errorf("%w: %d of %d files", errInvalidDiagrams, failed, len(reports))
		}
		return nil
	},
}

// issue is one invalid element.
type issue struct {
	label  string
	causes []string
}

type fileReport struct {
	path     string
	elements int
	loadErr  error
	issues   []issue
}

func (r fileReport) ok() bool { return r.loadErr == nil && len(r.issues) == 0 }

// validateFiles checks each file on its own goroutine. A file that fails to
// load is reported, not fatal.
func validateFiles(cmd *cobra.Command, paths []string) ([]fileReport, error) {
	jobs := validateJobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns one index.
	reports := make([]fileReport, len(paths))

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = validateFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func validateFile(path string) fileReport {
	report := fileReport{path: path}
	ed, err := openEditor(path, validateFormat)
	if err != nil {
		report.loadErr = err
		return report
	}
	report.elements = len(ed.Nodes())
	for _, el := range ed.Invalid() {
		report.issues = append(report.issues, issue{
			label:  elementLabel(el),
			causes: el.Validate().Flatten(),
		})
	}
	return report
}

func elementLabel(el diagram.Element) string {
	if shape := diagram.ShapeOf(el); shape != nil {
		return fmt.Sprintf("%s %s", el.Tag(), shape.ID)
	}
	return el.Tag()
}

func printReports(w io.Writer, reports []fileReport) int {
	okColor := color.New(color.FgGreen, color.Bold)
	failColor := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)

	failed := 0
	for _, r := range reports {
		switch {
		case r.loadErr != nil:
			failed++
			fmt.Fprintf(w, "%s %s: %v\n", failColor.Sprint("FAIL"), r.path, r.loadErr)
		case len(r.issues) > 0:
			failed++
			fmt.Fprintf(w, "%s %s: %d of %d elements invalid\n", failColor.Sprint("FAIL"), r.path, len(r.issues), r.elements)
			for _, is := range r.issues {
				fmt.Fprintf(w, "  %s\n", is.label)
				for _, c := range is.causes {
					fmt.Fprintf(w, "    %s\n", dim.Sprint(c))
				}
			}
		default:
			fmt.Fprintf(w, "%s %s (%d elements)\n", okColor.Sprint("ok"), r.path, r.elements)
		}
	}
	return failed
}
