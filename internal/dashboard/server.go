package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/psyhunter/internal/profile"
	"github.com/example/psyhunter/internal/scoring"
	"github.com/example/psyhunter/internal/sentiment"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

const (
	maxUploadBytes  = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Options configures a dashboard Server.
type Options struct {
	Analyzer  sentiment.Analyzer
	TracePath string
	Logger    *slog.Logger
}

// Server is the local interactive dashboard. It holds no scan state; every
// request recomputes from the submitted footprint.
type Server struct {
	policy    scoring.DashboardPolicy
	tracePath string
	logger    *slog.Logger
	page      *template.Template
}

type pageView struct {
	Target  string
	Text    string
	Error   string
	Scanned bool
	Result  scoring.ScanResult
	Gauge   gaugeView
}

type scanRequest struct {
	Target string `json:"target"`
	Text   string `json:"text"`
}

// New builds a dashboard server.
func New(opts Options) (*Server, error) {
	if opts.Analyzer == nil {
		return nil, errors.New("dashboard: analyzer is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	page, err := template.ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("dashboard: parse template: %w", err)
	}

	return &Server{
		policy:    scoring.DashboardPolicy{Analyzer: opts.Analyzer},
		tracePath: opts.TracePath,
		logger:    logger,
		page:      page,
	}, nil
}

// Routes returns the HTTP handler for the dashboard.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/import", s.handleImport)
	r.Post("/analyze", s.handleAnalyze)
	r.Route("/api", func(r chi.Router) {
		r.Get("/scan", s.handleAPIScan)
		r.Post("/scan", s.handleAPIScan)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})

	return r
}

// ListenAndServe serves the dashboard until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("dashboard listening", "url", "http://"+addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("dashboard shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, pageView{})
}

// handleImport loads a trace from an uploaded file when one is attached and
// from the configured trace path otherwise.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	p, source, err := s.importTrace(w, r)
	if err != nil {
		s.logger.Warn("trace import failed", "source", source, "error", err)
		s.render(w, http.StatusUnprocessableEntity, pageView{Error: importMessage(err)})
		return
	}

	s.logger.Info("trace imported", "source", source, "target", p.DisplayName)
	s.render(w, http.StatusOK, pageView{Target: p.DisplayName, Text: p.Joined()})
}

func (s *Server) importTrace(w http.ResponseWriter, r *http.Request) (profile.TargetProfile, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
		file, header, ferr := r.FormFile("trace")
		if ferr == nil {
			defer file.Close()
			data, rerr := io.ReadAll(file)
			if rerr != nil {
				return profile.TargetProfile{}, header.Filename, fmt.Errorf("%w: %v", profile.ErrInputFileMalformed, rerr)
			}
			p, perr := profile.ParseTrace(data)
			return p, header.Filename, perr
		}
	}

	p, err := profile.LoadTrace(s.tracePath)
	return p, s.tracePath, err
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, pageView{Error: "Could not read the submitted form."})
		return
	}

	req := scanRequest{Target: r.PostForm.Get("target"), Text: r.PostForm.Get("text")}
	view := pageView{Target: req.Target, Text: req.Text}

	result, err := s.scan(r.Context(), req)
	if err != nil {
		view.Error = scanMessage(err)
		s.render(w, statusFor(err), view)
		return
	}

	view.Scanned = true
	view.Result = result
	view.Gauge = newGauge(result.Score)
	s.render(w, http.StatusOK, view)
}

func (s *Server) handleAPIScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
	} else {
		req.Target = r.URL.Query().Get("target")
		req.Text = r.URL.Query().Get("text")
	}

	result, err := s.scan(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": scanMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) scan(ctx context.Context, req scanRequest) (scoring.ScanResult, error) {
	target := strings.TrimSpace(req.Target)
	if target == "" {
		target = "Unknown"
	}

	result, err := s.policy.Evaluate(ctx, profile.TargetProfile{DisplayName: target, Samples: []string{req.Text}})
	if err != nil {
		s.logger.Warn("scan failed", "target", target, "error", err)
		return scoring.ScanResult{}, err
	}

	s.logger.Debug("scan complete", "target", target, "score", result.Score, "tier", result.Tier)
	return result, nil
}

func (s *Server) render(w http.ResponseWriter, status int, view pageView) {
	if !view.Scanned {
		view.Gauge = newGauge(0)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, view); err != nil {
		s.logger.Error("render dashboard", "error", err)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, scoring.ErrEmptySampleSet):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func scanMessage(err error) string {
	switch {
	case errors.Is(err, scoring.ErrEmptySampleSet):
		return "Nothing to analyze: the digital footprint is empty."
	case errors.Is(err, sentiment.ErrSentimentDelegate):
		return "Sentiment analysis failed: " + err.Error()
	default:
		return "Analysis failed: " + err.Error()
	}
}

func importMessage(err error) string {
	switch {
	case errors.Is(err, profile.ErrInputFileMissing):
		return "Trace file not found. Upload a file or create the configured trace file."
	case errors.Is(err, profile.ErrInputFileMalformed):
		return "Trace file could not be parsed as a digital trace."
	default:
		return "Import failed: " + err.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(v)
}
