package server

import (
	"net/http"
	"sync/atomic"

	"github.com/apex/log"

	"znkr.io/ext/seqdiff/pack"
	"znkr.io/ext/seqdiff/report"
)

// snapshot holds all renderings of a single report.
type snapshot struct {
	files map[string]pack.File
}

func newSnapshot(r *report.Report, runs []*report.Report, base string) (*snapshot, error) {
	files, err := pack.Files(r, runs, base)
	if err != nil {
		return nil, err
	}
	snap := &snapshot{files: make(map[string]pack.File, len(files)+1)}
	for _, f := range files {
		snap.files["/"+f.Name] = f
	}
	snap.files["/"] = snap.files["/index.html"]
	return snap, nil
}

type handler struct {
	snapshot atomic.Pointer[snapshot]
}

func (h *handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s := h.snapshot.Load()

	switch req.Method {
	case http.MethodGet:
	case http.MethodHead:
	default:
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	f, ok := s.files[req.URL.EscapedPath()]
	if !ok {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		if req.Method == http.MethodGet {
			w.Write([]byte("not found"))
		}
		return
	}

	w.Header().Set("Content-Type", f.MimeType+"; charset=utf-8")
	if req.Method == http.MethodHead {
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(f.Data); err != nil {
		log.WithError(err).Warnf("failed to write response for %v", req.URL.EscapedPath())
	}
}
