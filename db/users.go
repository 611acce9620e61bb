package db

import (
	"database/sql"
	"fmt"

	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CreateUser inserts a new user and returns the stored record.
func (r *RosterDB) CreateUser(req *models.UserRequest) (*models.User, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	// Rollback transaction if an error occurs
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	userID := uuid.New()

	err = r.execQuery(tx, `
		INSERT INTO users (id, username, display_name, email)
		VALUES ($1, $2, $3, $4)`,
		userID, req.Username, req.DisplayName, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	if err = r.CommitTransaction(tx); err != nil {
		return nil, err
	}

	user := models.User{
		ID:          userID,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Email:       req.Email,
	}

	return &user, nil
}

// GetUser retrieves a single user by ID.
func (r *RosterDB) GetUser(userID uuid.UUID) (*models.User, error) {
	query := `SELECT id, username, display_name, email FROM users WHERE id = $1`
	row := r.DB.QueryRow(query, userID)

	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &u, nil
}

// GetUserByUsername retrieves a single user by username.
func (r *RosterDB) GetUserByUsername(username string) (*models.User, error) {
	query := `SELECT id, username, display_name, email FROM users WHERE username = $1`
	row := r.DB.QueryRow(query, username)

	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &u, nil
}

// GetUsersByUsernames retrieves the users matching the provided usernames.
// Unknown usernames are simply absent from the result.
func (r *RosterDB) GetUsersByUsernames(usernames []string) ([]models.User, error) {
	query := `SELECT id, username, display_name, email FROM users WHERE username = ANY($1)`
	rows, err := r.DB.Query(query, pq.Array(usernames))
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, nil
}

// DeleteUser deletes a user by ID. Enrolments and group memberships cascade
// with it.
func (r *RosterDB) DeleteUser(userID uuid.UUID) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	// Rollback transaction if an error occurs
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	err = r.execQuery(tx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error executing delete query: %w", err)
	}

	if err = r.CommitTransaction(tx); err != nil {
		return err
	}

	return nil
}
