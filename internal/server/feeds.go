package server

import (
	"net/http"

	"microblog/internal/metrics"
	"microblog/internal/models"
	"microblog/internal/paginate"
)

// handleIndex serves the global feed through the rendered-page cache.
// Hits return the stored bytes verbatim even if posts changed since; entries
// expire on the cache TTL or an explicit clear, never on writes.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := pageNumber(r)
	key := "index:" + itoa(page)
	if body, ok := s.Cache.Get(key); ok {
		metrics.CacheHits.Inc()
		writeHTML(w, body)
		return
	}
	metrics.CacheMisses.Inc()
	posts, err := models.ListFeed(s.DB)
	if err != nil {
		s.serverError(w, err)
		return
	}
	body, err := s.renderBytes("index", map[string]any{
		"User": s.currentUser(r),
		"Page": paginate.Paginate(posts, s.PageSize, page),
	})
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.Cache.Set(key, body)
	writeHTML(w, body)
}

func (s *Server) handleGroup(w http.ResponseWriter, r *http.Request) {
	group, err := models.GetGroupBySlug(s.DB, r.PathValue("slug"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	posts, err := models.ListGroupFeed(s.DB, group.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.render(w, "group", map[string]any{
		"User":  s.currentUser(r),
		"Group": group,
		"Page":  paginate.Paginate(posts, s.PageSize, pageNumber(r)),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	author, err := models.GetUserByUsername(s.DB, r.PathValue("username"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	posts, err := models.ListAuthorFeed(s.DB, author.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	following := false
	user := s.currentUser(r)
	if user != nil {
		following, err = models.IsFollowing(s.DB, user.ID, author.ID)
		if err != nil {
			s.serverError(w, err)
			return
		}
	}
	s.render(w, "profile", map[string]any{
		"User":      user,
		"Author":    author,
		"PostCount": len(posts),
		"Following": following,
		"Page":      paginate.Paginate(posts, s.PageSize, pageNumber(r)),
	})
}

// handleFollowIndex shows posts from every author the user follows.
// Following nobody is an empty page, not an error.
func (s *Server) handleFollowIndex(w http.ResponseWriter, r *http.Request, user *models.User) {
	posts, err := models.ListFollowedFeed(s.DB, user.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.render(w, "follow", map[string]any{
		"User": user,
		"Page": paginate.Paginate(posts, s.PageSize, pageNumber(r)),
	})
}
