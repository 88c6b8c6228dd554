package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"microblog/internal/models"
)

const maxUploadBytes = 10 << 20

func (s *Server) handlePostDetail(w http.ResponseWriter, r *http.Request) {
	s.renderPostDetail(w, r, atoi(r.PathValue("id")), "")
}

func (s *Server) renderPostDetail(w http.ResponseWriter, r *http.Request, id int, commentError string) {
	post, err := models.GetPost(s.DB, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	comments, err := models.ListComments(s.DB, post.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	count, err := models.CountPostsByAuthor(s.DB, post.AuthorID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.render(w, "post", map[string]any{
		"User":         s.currentUser(r),
		"Post":         post,
		"Comments":     comments,
		"PostCount":    count,
		"CommentError": commentError,
	})
}

func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request, user *models.User) {
	s.render(w, "create_post", map[string]any{"User": user, "Groups": s.groupChoices(), "SelectedGroup": 0})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request, user *models.User) {
	text, groupID := postForm(r)
	if text == "" {
		s.render(w, "create_post", map[string]any{"User": user, "Groups": s.groupChoices(), "SelectedGroup": 0, "Error": "text is required"})
		return
	}
	image, err := s.saveUpload(r)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if _, err := models.CreatePost(s.DB, user.ID, groupID, text, image, time.Now()); err != nil {
		s.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusSeeOther)
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request, user *models.User) {
	post, decision := s.authorizedPost(r, user)
	if decision != Allowed {
		http.NotFound(w, r)
		return
	}
	s.render(w, "create_post", map[string]any{"User": user, "IsEdit": true, "Post": post, "Groups": s.groupChoices(), "SelectedGroup": selectedGroup(post)})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request, user *models.User) {
	post, decision := s.authorizedPost(r, user)
	if decision != Allowed {
		http.NotFound(w, r)
		return
	}
	text, groupID := postForm(r)
	if text == "" {
		s.render(w, "create_post", map[string]any{"User": user, "IsEdit": true, "Post": post, "Groups": s.groupChoices(), "SelectedGroup": selectedGroup(post), "Error": "text is required"})
		return
	}
	image, err := s.saveUpload(r)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if image == "" {
		image = post.Image
	}
	if err := models.UpdatePost(s.DB, post.ID, groupID, text, image); err != nil {
		s.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/posts/"+itoa(post.ID)+"/", http.StatusSeeOther)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, user *models.User) {
	post, decision := s.authorizedPost(r, user)
	if decision != Allowed {
		http.NotFound(w, r)
		return
	}
	if err := models.DeletePost(s.DB, post.ID); err != nil {
		s.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusSeeOther)
}

func (s *Server) handleComment(w http.ResponseWriter, r *http.Request, user *models.User) {
	id := atoi(r.PathValue("id"))
	post, err := models.GetPost(s.DB, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	text := strings.TrimSpace(r.FormValue("text"))
	if text == "" {
		s.renderPostDetail(w, r, post.ID, "comment text is required")
		return
	}
	if err := models.CreateComment(s.DB, post.ID, user.ID, text); err != nil {
		s.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/posts/"+itoa(post.ID)+"/", http.StatusSeeOther)
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request, user *models.User) {
	title := strings.TrimSpace(r.FormValue("title"))
	slug := strings.TrimSpace(r.FormValue("slug"))
	if title == "" || slug == "" {
		http.Error(w, "title and slug are required", http.StatusBadRequest)
		return
	}
	if _, err := models.CreateGroup(s.DB, title, slug, r.FormValue("description")); err != nil {
		if errors.Is(err, models.ErrDuplicateSlug) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/group/"+slug+"/", http.StatusSeeOther)
}

func selectedGroup(post *models.Post) int {
	if post != nil && post.GroupID != nil {
		return *post.GroupID
	}
	return 0
}

// groupChoices feeds the optional group select on the post form.
func (s *Server) groupChoices() []models.Group {
	groups, err := models.ListGroups(s.DB)
	if err != nil {
		return nil
	}
	return groups
}

// authorizedPost loads the post from the path and runs the ownership check.
func (s *Server) authorizedPost(r *http.Request, user *models.User) (*models.Post, Decision) {
	post, err := models.GetPost(s.DB, atoi(r.PathValue("id")))
	if err != nil {
		post = nil
	}
	return post, authorizeEdit(user, post)
}

// postForm reads the shared create/edit fields. The group select is
// optional; a missing or malformed id means no group.
func postForm(r *http.Request) (text string, groupID *int) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		r.ParseMultipartForm(maxUploadBytes)
	}
	text = strings.TrimSpace(r.FormValue("text"))
	if v := r.FormValue("group"); v != "" {
		if id, err := strconv.Atoi(v); err == nil && id > 0 {
			groupID = &id
		}
	}
	return text, groupID
}

// saveUpload stores an attached image under the media dir and returns its
// relative path, or "" when the form carried no file.
func (s *Server) saveUpload(r *http.Request) (string, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		return "", nil
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()
	dir := filepath.Join(s.MediaDir, "posts")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "posts/" + name, nil
}
