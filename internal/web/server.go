package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/lcexplorer/internal/chart"
	"github.com/KaramelBytes/lcexplorer/internal/explorer"
	"github.com/KaramelBytes/lcexplorer/internal/source"
	"github.com/KaramelBytes/lcexplorer/internal/utils"
)

// Options configures the dashboard server.
type Options struct {
	Mode     source.Mode
	DataDir  string
	Explorer explorer.Options

	Title       string
	Subtitle    string
	Conclusion  string
	ChartWidth  int
	ChartHeight int
	// MaxUploadBytes caps a multipart request body.
	MaxUploadBytes int64
}

// Server serves the dashboard. Every request runs one independent render
// pass; nothing is kept between requests.
type Server struct {
	opts Options
	log  *utils.Logger
	tmpl *template.Template
}

func NewServer(opts Options, log *utils.Logger) (*Server, error) {
	if opts.Mode != source.ModeUpload && opts.Mode != source.ModeFolder {
		return nil, fmt.Errorf("invalid mode: %q", opts.Mode)
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	if opts.ChartWidth <= 0 {
		opts.ChartWidth = 900
	}
	if opts.ChartHeight <= 0 {
		opts.ChartHeight = 500
	}
	if log == nil {
		log = utils.Discard()
	}
	t, err := template.New("page").Funcs(funcMap).Parse(tmplBase + tmplControls + tmplMain)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{opts: opts, log: log, tmpl: t}, nil
}

// Handler returns the HTTP routes of the dashboard.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/render", s.handleRender)
	mux.HandleFunc("/chart.png", s.handleChartPNG)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("lcexplorer on %s  mode=%s", addr, s.opts.Mode)
	select {
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.log.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// ── Handlers ──────────────────────────────────────────────────────────────────

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	view, err := s.pass(w, r)
	data := s.pageData(view, err)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
	if err := s.tmpl.ExecuteTemplate(w, "base", data); err != nil {
		s.log.Error("template error: %v", err)
	}
}

type renderResponse struct {
	RenderID string          `json:"render_id"`
	Controls string          `json:"controls"`
	Main     string          `json:"main"`
	Spec     json.RawMessage `json:"spec,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	view, err := s.pass(w, r)
	data := s.pageData(view, err)
	resp := renderResponse{Spec: json.RawMessage(data.SpecJSON)}
	if view != nil {
		resp.RenderID = view.RenderID
	}
	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		resp.Spec = nil
		status = http.StatusInternalServerError
	}
	var controls, main bytes.Buffer
	if terr := s.tmpl.ExecuteTemplate(&controls, "controls", data); terr != nil {
		s.log.Error("template error: %v", terr)
	}
	if terr := s.tmpl.ExecuteTemplate(&main, "main", data); terr != nil {
		s.log.Error("template error: %v", terr)
	}
	resp.Controls = controls.String()
	resp.Main = main.String()
	if string(resp.Spec) == "null" {
		resp.Spec = nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	if s.opts.Mode != source.ModeFolder {
		http.Error(w, "chart.png is only available in folder mode", http.StatusNotFound)
		return
	}
	view, err := s.pass(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if view.Chart == nil {
		http.Error(w, view.Error, http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := chart.RenderPNG(&buf, view.Chart, s.opts.ChartWidth, s.opts.ChartHeight); err != nil {
		s.log.Error("render %s: %v", view.RenderID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

// pass parses the widget state of r and runs one render pass.
func (s *Server) pass(w http.ResponseWriter, r *http.Request) (*explorer.View, error) {
	if err := s.parseForm(w, r); err != nil {
		s.log.Warn("parse form: %v", err)
		return nil, fmt.Errorf("read form: %w", err)
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	src := s.sourceFor(r)
	_, view, err := explorer.Render(stateFromRequest(r), src, s.opts.Explorer)
	if err != nil {
		s.log.Error("render %s: %v", view.RenderID, err)
		return view, err
	}
	for _, msg := range view.Warnings {
		s.log.Warn("render %s: %s", view.RenderID, msg)
	}
	s.log.Debug("render %s mode=%s available=%d selected=%d", view.RenderID, view.Mode, len(view.Available), len(view.State.Selected))
	return view, nil
}

func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
		return r.ParseMultipartForm(s.opts.MaxUploadBytes)
	}
	return r.ParseForm()
}

func (s *Server) sourceFor(r *http.Request) source.Source {
	if s.opts.Mode == source.ModeFolder {
		return source.Folder{Dir: s.opts.DataDir}
	}
	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File["files"]
	}
	return &source.Upload{Files: files}
}

func stateFromRequest(r *http.Request) explorer.State {
	st := explorer.State{
		Selected: r.Form["sel"],
		Inspect:  r.Form.Get("inspect"),
	}
	if v := r.Form.Get("size"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			st.CircleSize = f
		}
	}
	return st
}
