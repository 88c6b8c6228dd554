package models

import "database/sql"

// AddFollow creates the follower→author edge. Self-follows and already
// present edges are no-ops; the UNIQUE(user_id, author_id) constraint plus
// OR IGNORE guarantees at most one edge per pair.
func AddFollow(db *sql.DB, userID, authorID int) error {
	if userID == authorID {
		return nil
	}
	_, err := db.Exec(`INSERT OR IGNORE INTO follows (user_id, author_id) VALUES (?, ?)`, userID, authorID)
	return err
}

// RemoveFollow deletes the edge if present; deleting a missing edge is a
// no-op.
func RemoveFollow(db *sql.DB, userID, authorID int) error {
	_, err := db.Exec(`DELETE FROM follows WHERE user_id = ? AND author_id = ?`, userID, authorID)
	return err
}

// IsFollowing is the single membership check every caller goes through.
func IsFollowing(db *sql.DB, userID, authorID int) (bool, error) {
	var exists bool
	err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM follows WHERE user_id = ? AND author_id = ?)`, userID, authorID).Scan(&exists)
	return exists, err
}

// FollowedAuthorIDs returns the ids of every author the user follows.
func FollowedAuthorIDs(db *sql.DB, userID int) ([]int, error) {
	rows, err := db.Query(`SELECT author_id FROM follows WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
