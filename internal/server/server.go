// Package server exposes the conversion over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/nibzard/report2xctsk/internal/config"
	"github.com/nibzard/report2xctsk/internal/convert"
	"github.com/nibzard/report2xctsk/internal/utils"
	"github.com/nibzard/report2xctsk/internal/waypoints"
	"github.com/nibzard/report2xctsk/internal/xctsk"
)

// WarningHeader carries each non-fatal conversion warning in the response.
const WarningHeader = "X-Xctsk-Warning"

// DefaultTaskName names the attachment when the request gives no name.
const DefaultTaskName = "task"

const usage = `report2xctsk

POST /convert   multipart/form-data
  report   task report text (field or file)
  wpt      waypoint catalog file (optional)
  offset   hours subtracted from local times (optional)
  name     task file name (optional, default "task")

GET  /healthz   liveness check
`

// Server serves the conversion endpoints.
type Server struct {
	cfg    *config.Config
	logger *log.Logger
	router *mux.Router
}

// New returns a server using cfg for conversion defaults and limits.
func New(cfg *config.Config, logger *log.Logger) *Server {
	s := &Server{cfg: cfg, logger: logger, router: mux.NewRouter()}
	s.router.Use(s.logRequests)
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/convert", s.handleConvert).Methods(http.MethodPost)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on the configured address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, usage)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.cfg.MaxUploadBytes {
		http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, source, err := readReport(r)
	if err != nil {
		writeInputError(w, err)
		return
	}

	req := convert.Request{
		Report:     report,
		Source:     source,
		UTCOffset:  s.cfg.UTCOffset,
		Validate:   s.cfg.ValidateOutput,
		Strict:     s.cfg.StrictValidation,
		SchemaPath: s.cfg.SchemaFile,
	}
	if v := strings.TrimSpace(r.FormValue("offset")); v != "" {
		req.UTCOffset, err = utils.ParseOffset(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	n := &requestNotifier{logger: s.logger.With("source", source)}
	desc, err := readWaypoints(r)
	if err != nil {
		var re *waypoints.ReadError
		if !errors.As(err, &re) {
			writeInputError(w, err)
			return
		}
		// An unreadable catalog leaves every description unknown.
		n.NotifyWarning(err.Error())
		desc = waypoints.Descriptions{}
	}
	req.Waypoints = desc
	if desc == nil {
		req.WaypointFile = s.cfg.WaypointFile
	}

	var opts []convert.Option
	if s.cfg.History {
		opts = append(opts, convert.WithHistory(s.cfg.LogDir))
	}
	res, err := convert.New(n, opts...).Convert(r.Context(), req)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, convert.ErrEmptyReport) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	for _, warning := range n.warnings {
		w.Header().Add(WarningHeader, warning)
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": taskFileName(r.FormValue("name")),
	}))
	w.Header().Set("Content-Transfer-Encoding", "binary")
	w.Write(res.Data)
}

// inputError is a client error with its HTTP status.
type inputError struct {
	status int
	msg    string
}

func (e *inputError) Error() string { return e.msg }

func writeInputError(w http.ResponseWriter, err error) {
	var ie *inputError
	if errors.As(err, &ie) {
		http.Error(w, ie.msg, ie.status)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// readReport returns the report from the "report" file part, falling back
// to the "report" text field.
func readReport(r *http.Request) (text, source string, err error) {
	file, header, err := r.FormFile("report")
	switch {
	case err == nil:
		defer file.Close()
		data, err := readText(file, "report")
		if err != nil {
			return "", "", err
		}
		return string(data), filepath.Base(header.Filename), nil
	case errors.Is(err, http.ErrMissingFile):
		text = r.FormValue("report")
		if strings.TrimSpace(text) == "" {
			return "", "", &inputError{http.StatusBadRequest, "missing report"}
		}
		return text, "report field", nil
	default:
		return "", "", err
	}
}

// readWaypoints parses the optional "wpt" file part. It returns nil when the
// request carries none.
func readWaypoints(r *http.Request) (waypoints.Descriptions, error) {
	file, _, err := r.FormFile("wpt")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := readText(file, "wpt")
	if err != nil {
		return nil, err
	}
	return waypoints.Parse(strings.NewReader(string(data)))
}

// readText reads an uploaded part and rejects content that is not text.
func readText(f multipart.File, part string) ([]byte, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", part, err)
	}
	mt := detectMIME(data)
	if !strings.HasPrefix(mt, "text/") {
		return nil, &inputError{http.StatusUnsupportedMediaType, fmt.Sprintf("%s must be text, got %s", part, mt)}
	}
	return data, nil
}

// taskFileName returns the attachment name for a requested task name.
func taskFileName(name string) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, "\\", "/")))
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == '"' || r == 0x7f {
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == "/" {
		name = DefaultTaskName
	}
	return xctsk.FileName(name)
}

// requestNotifier logs conversion messages and keeps the warnings for the response.
type requestNotifier struct {
	logger   *log.Logger
	warnings []string
}

func (n *requestNotifier) NotifySuccess(msg string) { n.logger.Info(msg) }
func (n *requestNotifier) NotifyError(msg string)   { n.logger.Warn(msg) }

func (n *requestNotifier) NotifyWarning(msg string) {
	n.warnings = append(n.warnings, msg)
	n.logger.Warn(msg)
}
