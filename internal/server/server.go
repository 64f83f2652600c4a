package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/activitylens/internal/app"
	"github.com/hyperifyio/activitylens/internal/insight"
	"github.com/hyperifyio/activitylens/internal/rank"
	"github.com/hyperifyio/activitylens/internal/report"
	"github.com/hyperifyio/activitylens/internal/risk"
)

//go:embed templates/index.html
var templates embed.FS

// maxUploadBytes bounds the multipart form kept in memory per request.
const maxUploadBytes = 32 << 20

// noteTimeout bounds the optional LLM call so a slow backend cannot stall
// the upload response.
const noteTimeout = 10 * time.Second

// Server is the HTTP front end: an upload form, the analysis handler and
// static serving for generated report files.
type Server struct {
	cfg     app.Config
	advisor *insight.Advisor
	tmpl    *template.Template
	router  *mux.Router
	now     func() time.Time
}

// New builds the server. advisor may be nil, which disables the LLM note.
func New(cfg app.Config, advisor *insight.Advisor) (*Server, error) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	s := &Server{cfg: cfg, advisor: advisor, tmpl: tmpl, now: time.Now}

	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	s.router = r
	return s, nil
}

// Handler exposes the router for an http.Server or a test client.
func (s *Server) Handler() http.Handler {
	return s.router
}

type categoryCount struct {
	Name  string
	Count int
}

// page is the template payload for both the empty form and the results.
type page struct {
	Error      string
	HasResult  bool
	Filename   string
	Categories []categoryCount
	Top        []rank.Item
	ShowTop    bool
	Risk       risk.Assessment
	Note       string
	ReportURL  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, page{})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.render(w, http.StatusBadRequest, page{Error: "No file part"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.render(w, http.StatusBadRequest, page{Error: "No file part"})
		return
	}
	defer file.Close()
	if header.Filename == "" {
		s.render(w, http.StatusBadRequest, page{Error: "No selected file"})
		return
	}

	// The stored name is derived from the uploaded name so concurrent
	// requests with different files cannot clobber each other.
	safe := safeName(header.Filename)
	savedPath, err := s.saveUpload(file, safe)
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("saving upload failed")
		s.render(w, http.StatusInternalServerError, page{Error: "Could not store the uploaded file."})
		return
	}

	analysis, err := app.Analyze(savedPath, header.Filename, s.now())
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("analysis failed")
		s.render(w, http.StatusInternalServerError, page{Error: "The uploaded file could not be analyzed."})
		return
	}

	p := page{
		HasResult: true,
		Filename:  analysis.Filename,
		Top:       analysis.Top,
		ShowTop:   !rank.IsSentinel(analysis.Top),
		Risk:      analysis.Risk,
		ReportURL: s.writeReport(analysis, safe),
		Note:      s.privacyNote(r.Context(), analysis),
	}
	for _, name := range app.OrderedCategories(analysis.Categories) {
		p.Categories = append(p.Categories, categoryCount{Name: name, Count: analysis.Categories[name]})
	}
	s.render(w, http.StatusOK, p)
}

func (s *Server) saveUpload(src io.Reader, safe string) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(s.cfg.UploadDir, safe+".html")
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return path, nil
}

// writeReport renders the PDF next to other static artifacts and returns
// its URL, or "" when rendering failed. A failed report never fails the
// request.
func (s *Server) writeReport(analysis app.Analysis, safe string) string {
	if err := os.MkdirAll(s.cfg.StaticDir, 0o755); err != nil {
		log.Warn().Err(err).Msg("create static dir failed; skipping report")
		return ""
	}
	name := "report_" + safe + ".pdf"
	if err := report.Write(analysis, filepath.Join(s.cfg.StaticDir, name)); err != nil {
		log.Warn().Err(err).Msg("report rendering failed")
		return ""
	}
	return "/static/" + name
}

// privacyNote asks the optional advisor for a short note. Any failure
// degrades to no note.
func (s *Server) privacyNote(ctx context.Context, analysis app.Analysis) string {
	if s.advisor == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, noteTimeout)
	defer cancel()

	var labels []string
	if !rank.IsSentinel(analysis.Top) {
		for _, it := range analysis.Top {
			labels = append(labels, it.Label)
		}
	}
	note, err := s.advisor.Note(ctx, insight.Input{
		Level:      string(analysis.Risk.Level),
		Percent:    analysis.Risk.Percent,
		Categories: analysis.Categories,
		TopLabels:  labels,
	})
	if err != nil {
		log.Warn().Err(err).Msg("privacy note unavailable")
		return ""
	}
	return note
}

func (s *Server) render(w http.ResponseWriter, status int, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.Execute(w, p); err != nil {
		log.Error().Err(err).Msg("page render failed")
	}
}

var unsafeNameRe = regexp.MustCompile(`[^a-z0-9]+`)

// safeName reduces an uploaded filename to a lowercase token usable as a
// filesystem name and URL segment.
func safeName(filename string) string {
	s := strings.ToLower(filepath.Base(filename))
	s = unsafeNameRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		s = "upload"
	}
	return s
}
