package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"classdraw/connections"
)

var inspectInputFormat string

func init() {
	inspectCmd.Flags().StringVar(&inspectInputFormat, "input-format", "", "save encoding (json|yaml|msgpack)")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Summarize the contents of a save file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadFile(args[0], inspectInputFormat)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		bold := color.New(color.Bold)

		fmt.Fprintf(w, "%s %s\n", bold.Sprint("file:"), args[0])
		fmt.Fprintf(w, "%s %d\n", bold.Sprint("save version:"), doc.Version)
		fmt.Fprintf(w, "%s %d\n", bold.Sprint("elements:"), len(doc.Nodes))

		counts := make(map[string]int)
		vertices, free := 0, 0
		for _, el := range doc.Nodes {
			counts[el.Tag()]++
			line := connections.PolylineOf(el)
			if line == nil {
				continue
			}
			vertices += len(line.Points())
			for _, p := range []connections.Point{line.StartPoint(), line.EndPoint()} {
				if _, ok := p.(*connections.LoosePoint); !ok {
					free++
				}
			}
		}
		for _, tag := range slices.Sorted(maps.Keys(counts)) {
			fmt.Fprintf(w, "  %-16s %d\n", tag, counts[tag])
		}
		if vertices > 0 {
			fmt.Fprintf(w, "%s %d (%d free ends)\n", bold.Sprint("connection vertices:"), vertices, free)
		}
		if len(doc.RenderSettings) > 0 {
			fmt.Fprintf(w, "%s %v\n", bold.Sprint("render settings:"), slices.Sorted(maps.Keys(doc.RenderSettings)))
		}
		return nil
	},
}
