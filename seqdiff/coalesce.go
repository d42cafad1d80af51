package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"znkr.io/ext/coalesce"
	"znkr.io/ext/indexpath"
	"znkr.io/ext/seqdiff/input"
)

func newCoalesceCmd() *cobra.Command {
	var timing string
	cmd := &cobra.Command{
		Use:   "coalesce FILE",
		Short: "Coalesce a log of list changes into a single batch update",
		Long: `Coalesce reads a change log and prints the changes necessary to perform all of them in one
batch update. A change log has one command per line:

    begin                  start a transaction, transactions nest
    end                    end a transaction
    insert PATH            insert at PATH, e.g. "0.3"
    delete PATH            delete the element at PATH
    update PATH            update the element at PATH
    move FROM TO           move an element
    diff OLD NEW [SECTION] record the changes between two sequences

Changes outside of a transaction form a transaction of their own. Lines starting
with # are ignored. FILE "-" reads from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var t coalesce.Timing
			switch timing {
			case "pop":
				t = coalesce.AtPop
			case "root-end":
				t = coalesce.AtRootEnd
			default:
				return fmt.Errorf("invalid --timing %q, want pop or root-end", timing)
			}

			in, dir := io.Reader(cmd.InOrStdin()), "."
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in, dir = f, filepath.Dir(args[0])
			}

			c := coalesce.New(t)
			if err := runChangeLog(in, dir, c); err != nil {
				return fmt.Errorf("%s: %v", args[0], err)
			}
			changes := c.Pop()
			log.Debugf("coalesced into %d changes", len(changes))
			for _, ch := range changes {
				fmt.Fprintln(cmd.OutOrStdout(), ch)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&timing, "timing", "pop", "when transactions are coalesced: pop or root-end")
	return cmd
}

// runChangeLog applies all commands in r to c. Files named in diff commands are relative to dir.
func runChangeLog(r io.Reader, dir string, c *coalesce.Coalescer) error {
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		if err := runCommand(c, dir, sc.Text()); err != nil {
			return fmt.Errorf("line %d: %v", n, err)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if c.InTransaction() {
		return errors.New("unterminated transaction")
	}
	return nil
}

func runCommand(c *coalesce.Coalescer, dir, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	paths := func(n int) ([]indexpath.Path, error) {
		if len(args) != n {
			return nil, fmt.Errorf("%s takes %d arguments, got %d", cmd, n, len(args))
		}
		ps := make([]indexpath.Path, n)
		for i, arg := range args {
			p, err := indexpath.Parse(arg)
			if err != nil {
				return nil, err
			}
			ps[i] = p
		}
		return ps, nil
	}

	switch cmd {
	case "begin":
		if _, err := paths(0); err != nil {
			return err
		}
		c.Begin()
	case "end":
		if _, err := paths(0); err != nil {
			return err
		}
		if !c.InTransaction() {
			return errors.New("end without begin")
		}
		c.End()
	case "insert", "delete", "update":
		ps, err := paths(1)
		if err != nil {
			return err
		}
		switch cmd {
		case "insert":
			c.PushInsert(ps[0])
		case "delete":
			c.PushDelete(ps[0])
		case "update":
			c.PushUpdate(ps[0])
		}
	case "move":
		ps, err := paths(2)
		if err != nil {
			return err
		}
		c.PushMove(ps[0], ps[1])
	case "diff":
		return runDiff(c, dir, args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func runDiff(c *coalesce.Coalescer, dir string, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("diff takes 2 or 3 arguments, got %d", len(args))
	}
	var section indexpath.Path
	if len(args) == 3 {
		var err error
		if section, err = indexpath.Parse(args[2]); err != nil {
			return err
		}
	}
	var seqs [2][]input.Element
	for i, name := range args[:2] {
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		elems, err := input.Load(name, input.Options{})
		if err != nil {
			return err
		}
		seqs[i] = elems
	}
	coalesce.PushDiff(c, section, seqs[0], seqs[1], input.Identity, input.SameContent)
	return nil
}
