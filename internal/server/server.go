package server

import (
	"bytes"
	"database/sql"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"microblog/internal/cache"
	"microblog/internal/metrics"
)

// DefaultPageSize is shared by every feed.
const DefaultPageSize = 10

type Server struct {
	DB    *sql.DB
	Cache cache.Cache

	PageSize   int
	CookieName string
	MediaDir   string
	StaticDir  string

	tmpl map[string]*template.Template
}

func New(db *sql.DB, templateDir string, c cache.Cache) (*Server, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}
	templates := map[string]*template.Template{}
	layout := filepath.Join(templateDir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}
		t, err := template.New("layout.html").Funcs(funcs).ParseFiles(layout, page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		templates[name] = t
	}
	return &Server{
		DB:         db,
		Cache:      c,
		PageSize:   DefaultPageSize,
		CookieName: "session_id",
		MediaDir:   "media",
		StaticDir:  "web/static",
		tmpl:       templates,
	}, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /group/{slug}/{$}", s.handleGroup)
	mux.HandleFunc("GET /profile/{username}/{$}", s.handleProfile)
	mux.HandleFunc("GET /posts/{id}/{$}", s.handlePostDetail)

	mux.HandleFunc("GET /create/{$}", s.requireAuth(s.handleCreateForm))
	mux.HandleFunc("POST /create/{$}", s.requireAuth(s.handleCreate))
	mux.HandleFunc("GET /posts/{id}/edit/{$}", s.requireAuth(s.handleEditForm))
	mux.HandleFunc("POST /posts/{id}/edit/{$}", s.requireAuth(s.handleEdit))
	mux.HandleFunc("POST /posts/{id}/delete/{$}", s.requireAuth(s.handleDelete))
	mux.HandleFunc("POST /posts/{id}/comment/{$}", s.requireAuth(s.handleComment))

	mux.HandleFunc("POST /profile/{username}/follow/{$}", s.requireAuth(s.handleFollow))
	mux.HandleFunc("POST /profile/{username}/unfollow/{$}", s.requireAuth(s.handleUnfollow))
	mux.HandleFunc("GET /follow/{$}", s.requireAuth(s.handleFollowIndex))

	mux.HandleFunc("POST /groups/{$}", s.requireAuth(s.handleCreateGroup))
	mux.HandleFunc("POST /cache/clear/{$}", s.requireAuth(s.handleCacheClear))

	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)

	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.StaticDir))))
	mux.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(http.Dir(s.MediaDir))))

	return s.instrument(mux)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.routes().ServeHTTP(w, r)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		elapsed := time.Since(start)
		metrics.RequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		metrics.RequestDuration.WithLabelValues(r.Method, pattern).Observe(elapsed.Seconds())
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	body, err := s.renderBytes(name, data)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeHTML(w, body)
}

// renderBytes renders into memory so the homepage handler can cache the
// exact bytes it serves.
func (s *Server) renderBytes(name string, data any) ([]byte, error) {
	t, ok := s.tmpl[name]
	if !ok {
		return nil, errTemplateNotFound(name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type errTemplateNotFound string

func (e errTemplateNotFound) Error() string { return "template not found: " + string(e) }

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	slog.Error("handler error", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// pageNumber reads ?page=; anything missing or below 1 is page 1. Values
// above the last page clamp inside Paginate.
func pageNumber(r *http.Request) int {
	n, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if n < 1 {
		n = 1
	}
	return n
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
