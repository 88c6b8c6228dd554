package models

import (
	"database/sql"
	"time"
)

const postColumns = `p.id, p.author_id, u.username, p.group_id, COALESCE(g.title, ''), COALESCE(g.slug, ''), p.text, p.image, p.pub_date
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id`

// Feeds order newest-first; equal pub_date falls back to id descending so
// the ordering is total and repeated queries slice identically.
const feedOrder = ` ORDER BY p.pub_date DESC, p.id DESC`

func CreatePost(db *sql.DB, authorID int, groupID *int, text, image string, pubDate time.Time) (int64, error) {
	res, err := db.Exec(`INSERT INTO posts (author_id, group_id, text, image, pub_date) VALUES (?, ?, ?, ?, ?)`,
		authorID, groupID, text, image, pubDate)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePost changes text, group and image. pub_date is set once at creation
// and never rewritten.
func UpdatePost(db *sql.DB, id int, groupID *int, text, image string) error {
	_, err := db.Exec(`UPDATE posts SET group_id = ?, text = ?, image = ? WHERE id = ?`, groupID, text, image, id)
	return err
}

// DeletePost removes the post; its comments go with it via the CASCADE action.
func DeletePost(db *sql.DB, id int) error {
	_, err := db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	return err
}

func GetPost(db *sql.DB, id int) (*Post, error) {
	row := db.QueryRow(`SELECT `+postColumns+` WHERE p.id = ?`, id)
	var p Post
	var groupID sql.NullInt64
	err := row.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &groupID, &p.GroupTitle, &p.GroupSlug, &p.Text, &p.Image, &p.PubDate)
	if err != nil {
		return nil, err
	}
	if groupID.Valid {
		gid := int(groupID.Int64)
		p.GroupID = &gid
	}
	return &p, nil
}

// ListFeed returns every post, newest-first.
func ListFeed(db *sql.DB) ([]Post, error) {
	return queryPosts(db, `SELECT `+postColumns+feedOrder)
}

// ListGroupFeed returns the posts filed under one group, newest-first.
func ListGroupFeed(db *sql.DB, groupID int) ([]Post, error) {
	return queryPosts(db, `SELECT `+postColumns+` WHERE p.group_id = ?`+feedOrder, groupID)
}

// ListAuthorFeed returns one author's posts, newest-first.
func ListAuthorFeed(db *sql.DB, authorID int) ([]Post, error) {
	return queryPosts(db, `SELECT `+postColumns+` WHERE p.author_id = ?`+feedOrder, authorID)
}

// ListFollowedFeed returns posts by every author the user follows,
// newest-first. Following nobody yields an empty feed, not an error.
func ListFollowedFeed(db *sql.DB, userID int) ([]Post, error) {
	return queryPosts(db, `SELECT `+postColumns+
		` WHERE p.author_id IN (SELECT author_id FROM follows WHERE user_id = ?)`+feedOrder, userID)
}

func CountPostsByAuthor(db *sql.DB, authorID int) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM posts WHERE author_id = ?`, authorID).Scan(&n)
	return n, err
}

func queryPosts(db *sql.DB, q string, args ...any) ([]Post, error) {
	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []Post
	for rows.Next() {
		var p Post
		var groupID sql.NullInt64
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &groupID, &p.GroupTitle, &p.GroupSlug, &p.Text, &p.Image, &p.PubDate); err != nil {
			return nil, err
		}
		if groupID.Valid {
			gid := int(groupID.Int64)
			p.GroupID = &gid
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func CreateComment(db *sql.DB, postID, authorID int, text string) error {
	_, err := db.Exec(`INSERT INTO comments (post_id, author_id, text) VALUES (?, ?, ?)`, postID, authorID, text)
	return err
}

// ListComments returns a post's comments, newest-first.
func ListComments(db *sql.DB, postID int) ([]Comment, error) {
	rows, err := db.Query(`SELECT c.id, c.post_id, c.author_id, u.username, c.text, c.created
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.post_id = ? ORDER BY c.created DESC, c.id DESC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cs []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Text, &c.Created); err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, rows.Err()
}

func CountComments(db *sql.DB, postID int) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID).Scan(&n)
	return n, err
}
