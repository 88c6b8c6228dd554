package server

import (
	"net/http"

	"microblog/internal/models"
)

// handleFollow subscribes the signed-in user to an author. AddFollow is
// idempotent and ignores self-follows, so re-submitting the form never
// creates a second edge.
func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request, user *models.User) {
	author, err := models.GetUserByUsername(s.DB, r.PathValue("username"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := models.AddFollow(s.DB, user.ID, author.ID); err != nil {
		s.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/profile/"+author.Username+"/", http.StatusSeeOther)
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request, user *models.User) {
	author, err := models.GetUserByUsername(s.DB, r.PathValue("username"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := models.RemoveFollow(s.DB, user.ID, author.ID); err != nil {
		s.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/profile/"+author.Username+"/", http.StatusSeeOther)
}

// handleCacheClear is the administrative override for the homepage cache:
// the next request recomputes and re-caches.
func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request, user *models.User) {
	s.Cache.Clear()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
