package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/google/uuid"
)

// CreateGroup inserts a new group and returns the stored record.
func (r *RosterDB) CreateGroup(group models.Group) (*models.Group, error) {
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

	group.ID = uuid.New()
	group.CreatedAt = time.Now().UTC()

	err = r.execQuery(tx, `
		INSERT INTO groups (id, course_id, created_at, name, id_number, description, visibility, participation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		group.ID, group.CourseID, group.CreatedAt, group.Name, group.IDNumber, group.Description, group.Visibility, group.Participation)
	if err != nil {
		return nil, fmt.Errorf("error inserting group: %w", err)
	}

	if err = r.CommitTransaction(tx); err != nil {
		return nil, err
	}

	return &group, nil
}

// GetGroup retrieves a single group by ID.
func (r *RosterDB) GetGroup(groupID uuid.UUID) (*models.Group, error) {
	query := `SELECT id, course_id, created_at, name, id_number, description, visibility, participation FROM groups WHERE id = $1`
	row := r.DB.QueryRow(query, groupID)

	var g models.Group
	if err := row.Scan(&g.ID, &g.CourseID, &g.CreatedAt, &g.Name, &g.IDNumber, &g.Description, &g.Visibility, &g.Participation); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning group: %w", err)
	}
	return &g, nil
}

// GetCourseGroups retrieves every group of a course, ordered by name.
func (r *RosterDB) GetCourseGroups(courseID uuid.UUID) ([]models.Group, error) {
	query := `
		SELECT id, course_id, created_at, name, id_number, description, visibility, participation
		FROM groups
		WHERE course_id = $1
		ORDER BY name`
	rows, err := r.DB.Query(query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.CourseID, &g.CreatedAt, &g.Name, &g.IDNumber, &g.Description, &g.Visibility, &g.Participation); err != nil {
			return nil, fmt.Errorf("error scanning group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// UpdateGroup updates an existing group's details.
func (r *RosterDB) UpdateGroup(group models.Group) (*models.Group, error) {
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

	err = r.execQuery(tx, `
		UPDATE groups
		SET name = $1, id_number = $2, description = $3, visibility = $4, participation = $5 WHERE id = $6`,
		group.Name, group.IDNumber, group.Description, group.Visibility, group.Participation, group.ID)
	if err != nil {
		return nil, fmt.Errorf("error updating group: %w", err)
	}

	if err = r.CommitTransaction(tx); err != nil {
		return nil, err
	}

	return &group, nil
}

// DeleteGroup deletes a group by ID. Members cascade with it.
func (r *RosterDB) DeleteGroup(groupID uuid.UUID) error {
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

	err = r.execQuery(tx, `DELETE FROM groups WHERE id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("error executing delete query: %w", err)
	}

	if err = r.CommitTransaction(tx); err != nil {
		return err
	}

	return nil
}

// CheckGroupNameExists checks if a group with the specified name already
// exists in the course.
func (r *RosterDB) CheckGroupNameExists(courseID uuid.UUID, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM groups WHERE course_id = $1 AND name = $2)`
	var exists bool
	err := r.DB.QueryRow(query, courseID, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking group existence: %w", err)
	}
	return exists, nil
}
