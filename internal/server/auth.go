package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"microblog/internal/models"
)

// Decision is the outcome of an authorization check on a mutating handler.
type Decision int

const (
	Allowed Decision = iota
	NotFound
	RedirectToLogin
)

// authorizeEdit decides whether user may mutate post. A signed-in non-owner
// gets NotFound rather than Forbidden so the response doesn't confirm the
// post exists.
func authorizeEdit(user *models.User, post *models.Post) Decision {
	if user == nil {
		return RedirectToLogin
	}
	if post == nil || post.AuthorID != user.ID {
		return NotFound
	}
	return Allowed
}

// requireAuth redirects anonymous requests to the login page, carrying the
// original URL in ?next= so login can return the user there.
func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, *models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.currentUser(r)
		if user == nil {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next(w, r, user)
	}
}

func (s *Server) currentUser(r *http.Request) *models.User {
	cookie, err := r.Cookie(s.CookieName)
	if err != nil {
		return nil
	}
	sess, err := models.GetSession(s.DB, cookie.Value)
	if err != nil || sess.RevokedAt != nil || sess.ExpiresAt.Before(time.Now()) {
		return nil
	}
	user, err := models.GetUserByID(s.DB, sess.UserID)
	if err != nil {
		return nil
	}
	return user
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "register", map[string]any{"User": s.currentUser(r), "Email": "", "Username": ""})
	case http.MethodPost:
		email := strings.TrimSpace(r.FormValue("email"))
		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")
		if email == "" || username == "" || password == "" {
			s.render(w, "register", map[string]any{"Error": "all fields are required", "Email": email, "Username": username})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			s.serverError(w, err)
			return
		}
		if err := models.CreateUser(s.DB, email, username, string(hash)); err != nil {
			s.render(w, "register", map[string]any{"Error": err.Error(), "Email": email, "Username": username})
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "login", map[string]any{
			"User": s.currentUser(r),
			"Next": r.URL.Query().Get("next"),
		})
	case http.MethodPost:
		email := r.FormValue("email")
		password := r.FormValue("password")
		user, err := models.GetUserByEmail(s.DB, email)
		if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			s.render(w, "login", map[string]any{"Error": models.ErrInvalidCredentials.Error(), "Next": r.FormValue("next")})
			return
		}
		sid := uuid.NewString()
		expires := time.Now().Add(24 * time.Hour)
		if err := models.CreateSession(s.DB, user.ID, sid, expires); err != nil {
			s.serverError(w, err)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: s.CookieName, Value: sid, Path: "/", Expires: expires, HttpOnly: true})
		http.Redirect(w, r, safeNext(r.FormValue("next")), http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// safeNext only honors site-relative targets.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if cookie, err := r.Cookie(s.CookieName); err == nil {
		models.RevokeSession(s.DB, cookie.Value)
		http.SetCookie(w, &http.Cookie{Name: s.CookieName, Path: "/", MaxAge: -1})
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
