package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"znkr.io/ext/seqdiff/pack"
	"znkr.io/ext/seqdiff/report"
)

func newReportCmd() *cobra.Command {
	var (
		in      inputFlags
		output  string
		explain bool
	)
	cmd := &cobra.Command{
		Use:   "report FROM TO",
		Short: "Write an HTML report, or a .tar with all renderings of it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := in.options()
			if err != nil {
				return err
			}
			r, err := report.Compare(args[0], args[1], opts)
			if err != nil {
				return err
			}
			r.Explain = explain

			var size int64
			switch {
			case output == "" || output == "-":
				return r.Write(cmd.OutOrStdout(), report.HTML, report.Options{})
			case filepath.Ext(output) == ".tar":
				if size, err = pack.Pack(output, r); err != nil {
					return fmt.Errorf("packing report: %v", err)
				}
			default:
				b, err := r.HTML()
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, b, 0644); err != nil {
					return fmt.Errorf("writing report: %v", err)
				}
				size = int64(len(b))
			}
			log.Infof("wrote %s (%s)", output, humanize.Bytes(uint64(size)))
			return nil
		},
	}
	in.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, a .tar file gets all renderings (default stdout)")
	cmd.Flags().BoolVar(&explain, "explain", true, "explain content changes")
	return cmd
}
