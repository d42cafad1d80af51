package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"znkr.io/ext/diff"
	"znkr.io/ext/seqdiff/config"
	"znkr.io/ext/seqdiff/report"
)

func newDiffCmd() *cobra.Command {
	var (
		in        inputFlags
		format    string
		colorMode string
		only      string
		explain   bool
	)
	cmd := &cobra.Command{
		Use:   "diff FROM TO",
		Short: "Classify the elements of two sequences as stationary, inserted, deleted, moved or changed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := in.options()
			if err != nil {
				return err
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			color, err := useColor(colorMode, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			var categories diff.Category = diff.All
			if only != "" {
				if categories, err = parseOnly(only); err != nil {
					return err
				}
			}

			start := time.Now()
			r, err := report.Compare(args[0], args[1], opts)
			if err != nil {
				return err
			}
			log.Debugf("compared %d elements (%v)", r.Elements, time.Since(start))

			r.Filter(categories)
			r.Explain = explain
			return r.Write(cmd.OutOrStdout(), f, report.Options{Color: color})
		},
	}
	in.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", config.Default().Format, "output format: "+formats())
	cmd.Flags().StringVar(&colorMode, "color", config.Default().Color, "use colours: auto, always or never")
	cmd.Flags().StringVar(&only, "only", "", "only report these categories, e.g. Moved|Changed")
	cmd.Flags().BoolVar(&explain, "explain", false, "explain content changes")
	return cmd
}

func parseOnly(s string) (diff.Category, error) {
	c, err := diff.ParseCategory(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --only: %v", err)
	}
	if !c.Valid() {
		return 0, fmt.Errorf("invalid --only: %v is not a valid combination of categories", c)
	}
	return c, nil
}

func formats() string {
	names := make([]string, len(report.Formats))
	for i, f := range report.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
