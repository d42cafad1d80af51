// Package server serves a live report via HTTP.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"znkr.io/ext/seqdiff/report"
)

// MaxRuns is the number of runs kept for the Atom feed.
const MaxRuns = 20

// Server serves the latest report and a feed of previous runs via HTTP.
type Server struct {
	http    *http.Server
	handler *handler
	addr    net.Addr
	errc    chan error

	mu   sync.Mutex
	runs []*report.Report // newest first
}

// Run creates a new server and runs it in a new goroutine.
func Run(addr string, r *report.Report) (*Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("starting HTTP server: %v", err)
	}

	s := &Server{
		handler: &handler{},
		addr:    l.Addr(),
		errc:    make(chan error, 1),
	}
	s.http = &http.Server{Handler: s.handler}
	if err := s.ReplaceReport(r); err != nil {
		l.Close()
		return nil, err
	}

	go func() {
		if err := s.http.Serve(l); err != nil && err != http.ErrServerClosed {
			s.errc <- err
		}
	}()

	return s, nil
}

// URL returns the base URL of the server.
func (s *Server) URL() string { return "http://" + s.addr.String() }

// ReplaceReport makes r the report to serve and adds it to the feed. The previous report
// continues to be served if r can't be rendered.
func (s *Server) ReplaceReport(r *report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := append([]*report.Report{r}, s.runs...)
	if len(runs) > MaxRuns {
		runs = runs[:MaxRuns]
	}
	snap, err := newSnapshot(r, runs, s.URL())
	if err != nil {
		return err
	}
	s.runs = runs
	s.handler.snapshot.Store(snap)
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %v", err)
	}
	return nil
}

// Error returns a channel to listen to errors while serving.
func (s *Server) Error() <-chan error {
	return s.errc
}
