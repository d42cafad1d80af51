package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"znkr.io/ext/seqdiff/config"
	"znkr.io/ext/seqdiff/report"
	"znkr.io/ext/seqdiff/server"
)

func newServeCmd() *cobra.Command {
	var (
		in   inputFlags
		addr string
	)
	cmd := &cobra.Command{
		Use:   "serve FROM TO",
		Short: "Serve a live report that is updated whenever FROM or TO change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := in.options()
			if err != nil {
				return err
			}
			files := make([]string, len(args))
			for i, arg := range args {
				if files[i], err = filepath.Abs(arg); err != nil {
					return fmt.Errorf("resolving %s: %v", arg, err)
				}
			}

			compare := func() (*report.Report, error) {
				r, err := report.Compare(args[0], args[1], opts)
				if err != nil {
					return nil, err
				}
				r.Explain = true
				return r, nil
			}

			r, err := compare()
			if err != nil {
				return err
			}

			// Start serving.
			srv, err := server.Run(addr, r)
			if err != nil {
				return err
			}
			defer srv.Shutdown(context.Background())
			log.Infof("now serving at %s, press Ctrl-C to shut down", srv.URL())

			// Setup file watcher to trigger a new comparison should any of the files change.
			// Directories are watched to survive editors that replace files.
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("starting watcher: %v", err)
			}
			defer watcher.Close()
			for _, dir := range watchDirs(files) {
				if err := watcher.Add(dir); err != nil {
					return fmt.Errorf("starting watch: %v", err)
				}
			}
			log.Debugf("watching:\n    %v", strings.Join(watcher.WatchList(), "\n    "))

			// Setup signals to react to Ctrl-C.
			sigint := make(chan os.Signal, 1)
			signal.Notify(sigint, os.Interrupt)
			defer signal.Stop(sigint)

			for {
				select {
				case event := <-watcher.Events:
					// Absolutely no need to react to chmod.
					if event.Has(fsnotify.Chmod) || !slices.Contains(files, filepath.Clean(event.Name)) {
						continue
					}

					start := time.Now()
					r, err := compare()
					if err != nil {
						log.WithError(err).Warn("failed to update report")
						continue
					}
					if err := srv.ReplaceReport(r); err != nil {
						log.WithError(err).Warn("failed to render report")
						continue
					}
					log.Infof("report updated, %s (%v)", r.Summary(), time.Since(start))
				case err := <-watcher.Errors:
					return fmt.Errorf("watching: %v", err)
				case err := <-srv.Error():
					return fmt.Errorf("serving: %v", err)
				case <-sigint:
					fmt.Print("\r") // remove Ctrl-C output characters
					log.Info("received Ctrl-C, shutting down")
					return nil
				}
			}
		},
	}
	in.register(cmd.Flags())
	cmd.Flags().StringVar(&addr, "addr", config.Default().Addr, "address to listen on")
	return cmd
}

// watchDirs returns the sorted, unique directories containing files.
func watchDirs(files []string) []string {
	var dirs []string
	for _, f := range files {
		dirs = append(dirs, filepath.Dir(f))
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}
