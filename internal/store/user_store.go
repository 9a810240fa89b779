package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
)

// CreateUser adds a new user to the database. It returns ErrDuplicate when
// the email is already registered.
func (s *Store) CreateUser(name, email, passwordHash string) (*models.User, error) {
	query := "INSERT INTO users (name, email, password_hash, created_at) VALUES (?, ?, ?, ?)"
	res, err := s.db.Exec(query, name, email, passwordHash, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	id, _ := res.LastInsertId()
	return s.GetUserByID(id)
}

// GetUserByEmail retrieves a user by their unique email address.
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	return s.getUser("email = ?", email)
}

// GetUserByID retrieves a user by their primary key.
func (s *Store) GetUserByID(id int64) (*models.User, error) {
	return s.getUser("id = ?", id)
}

func (s *Store) getUser(where string, arg interface{}) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, name, email, password_hash, bio, avatar, reading_goal, reading_goal_type, created_at
		FROM users WHERE ` + where
	err := s.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Bio,
		&user.Avatar, &user.ReadingGoal, &user.ReadingGoalType, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the user's name, bio and avatar. Nil fields are left
// untouched, matching the partial-update semantics of the profile endpoint.
func (s *Store) UpdateProfile(id int64, name, bio, avatar *string) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		user.Name = *name
	}
	if bio != nil {
		user.Bio = *bio
	}
	if avatar != nil {
		user.Avatar = *avatar
	}
	query := "UPDATE users SET name = ?, bio = ?, avatar = ? WHERE id = ?"
	if _, err := s.db.Exec(query, user.Name, user.Bio, user.Avatar, id); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateReadingGoal sets the user's reading goal and its cadence.
func (s *Store) UpdateReadingGoal(id int64, goal int, goalType string) (*models.User, error) {
	query := "UPDATE users SET reading_goal = ?, reading_goal_type = ? WHERE id = ?"
	if _, err := s.db.Exec(query, goal, goalType, id); err != nil {
		return nil, err
	}
	return s.GetUserByID(id)
}

// CountUsers returns the total number of users in the database.
func (s *Store) CountUsers() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// CreateSession creates a new session for a user and returns the session token.
func (s *Store) CreateSession(userID int64) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(tokenBytes)
	expiry := time.Now().Add(7 * 24 * time.Hour) // 1 week session
	_, err := s.db.Exec("INSERT INTO sessions (token, user_id, expiry) VALUES (?, ?, ?)", token, userID, expiry)
	return token, err
}

// DeleteSession removes a session from the database (used for logout).
func (s *Store) DeleteSession(token string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE token = ?", token)
	return err
}

// GetUserFromSession retrieves a user based on a session token.
func (s *Store) GetUserFromSession(token string) (*models.User, error) {
	var userID int64
	var expiry time.Time
	query := "SELECT user_id, expiry FROM sessions WHERE token = ?"
	err := s.db.QueryRow(query, token).Scan(&userID, &expiry)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("invalid session token")
		}
		return nil, err
	}

	if time.Now().After(expiry) {
		s.DeleteSession(token) // Clean up expired session
		return nil, errors.New("session expired")
	}

	return s.GetUserByID(userID)
}

// Follow records that follower now follows followee. Following a user twice
// returns ErrDuplicate.
func (s *Store) Follow(followerID, followeeID int64) error {
	_, err := s.db.Exec(
		"INSERT INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?)",
		followerID, followeeID, time.Now())
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// Unfollow removes the follow relationship if it exists.
func (s *Store) Unfollow(followerID, followeeID int64) error {
	_, err := s.db.Exec(
		"DELETE FROM follows WHERE follower_id = ? AND followee_id = ?",
		followerID, followeeID)
	return err
}

// FollowingIDs returns the ids of everyone the user follows.
func (s *Store) FollowingIDs(userID int64) ([]int64, error) {
	rows, err := s.db.Query("SELECT followee_id FROM follows WHERE follower_id = ? ORDER BY created_at", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Followers returns the users following the given user, name and avatar only.
func (s *Store) Followers(userID int64) ([]*models.UserSummary, error) {
	query := `
		SELECT u.id, u.name, u.avatar
		FROM follows f JOIN users u ON f.follower_id = u.id
		WHERE f.followee_id = ?
		ORDER BY u.name ASC`
	return s.listUserSummaries(query, userID)
}

// Following returns the users the given user follows, name and avatar only.
func (s *Store) Following(userID int64) ([]*models.UserSummary, error) {
	query := `
		SELECT u.id, u.name, u.avatar
		FROM follows f JOIN users u ON f.followee_id = u.id
		WHERE f.follower_id = ?
		ORDER BY u.name ASC`
	return s.listUserSummaries(query, userID)
}

func (s *Store) listUserSummaries(query string, arg interface{}) ([]*models.UserSummary, error) {
	rows, err := s.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []*models.UserSummary{}
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar); err != nil {
			return nil, err
		}
		summaries = append(summaries, &u)
	}
	return summaries, rows.Err()
}
