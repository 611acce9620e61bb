package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/google/uuid"
)

// Enrol adds a user to a course with the given role and returns the stored
// enrolment.
func (r *RosterDB) Enrol(courseID, userID uuid.UUID, roleName string) (*models.Enrolment, error) {
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

	timeCreated := time.Now().UTC()

	err = r.execQuery(tx, `
		INSERT INTO enrolments (course_id, user_id, role_name, time_created)
		VALUES ($1, $2, $3, $4)`,
		courseID, userID, roleName, timeCreated)
	if err != nil {
		return nil, fmt.Errorf("error inserting enrolment: %w", err)
	}

	if err = r.CommitTransaction(tx); err != nil {
		return nil, err
	}

	enrolment := models.Enrolment{
		CourseID:    courseID,
		UserID:      userID,
		RoleName:    roleName,
		TimeCreated: timeCreated,
	}

	return &enrolment, nil
}

// Unenrol removes a user's enrolment together with their group memberships
// in that course, in a single transaction. Returns ErrNotFound when the user
// was not enrolled.
func (r *RosterDB) Unenrol(courseID, userID uuid.UUID) error {
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

	// Group membership follows enrolment, so the edges go first.
	err = r.execQuery(tx, `
		DELETE FROM group_members gm
		USING groups g
		WHERE gm.group_id = g.id AND g.course_id = $1 AND gm.user_id = $2`,
		courseID, userID)
	if err != nil {
		return fmt.Errorf("error deleting group memberships: %w", err)
	}

	res, execErr := tx.Exec(`DELETE FROM enrolments WHERE course_id = $1 AND user_id = $2`, courseID, userID)
	if execErr != nil {
		err = fmt.Errorf("error deleting enrolment: %w", execErr)
		return err
	}

	count, execErr := res.RowsAffected()
	if execErr != nil {
		err = fmt.Errorf("error reading affected rows: %w", execErr)
		return err
	}
	if count == 0 {
		err = ErrNotFound
		return err
	}

	if err = r.CommitTransaction(tx); err != nil {
		return err
	}

	return nil
}

// GetEnrolment retrieves a single enrolment.
func (r *RosterDB) GetEnrolment(courseID, userID uuid.UUID) (*models.Enrolment, error) {
	query := `SELECT course_id, user_id, role_name, time_created FROM enrolments WHERE course_id = $1 AND user_id = $2`
	row := r.DB.QueryRow(query, courseID, userID)

	var e models.Enrolment
	if err := row.Scan(&e.CourseID, &e.UserID, &e.RoleName, &e.TimeCreated); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning enrolment: %w", err)
	}
	return &e, nil
}

// CheckEnrolmentExists checks if the user is enrolled in the course.
func (r *RosterDB) CheckEnrolmentExists(courseID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM enrolments WHERE course_id = $1 AND user_id = $2)`
	var exists bool
	err := r.DB.QueryRow(query, courseID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrolment existence: %w", err)
	}
	return exists, nil
}

// GetCourseParticipants retrieves every enrolled user of a course as bare
// roster rows, ordered by display name. Group columns are filled in by the
// service layer after the visibility filter has run.
func (r *RosterDB) GetCourseParticipants(courseID uuid.UUID) ([]models.Participant, error) {
	query := `
		SELECT u.id, u.username, u.display_name, e.role_name
		FROM enrolments e
		INNER JOIN users u ON u.id = e.user_id
		WHERE e.course_id = $1
		ORDER BY u.display_name, u.username`
	rows, err := r.DB.Query(query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.UserID, &p.Username, &p.DisplayName, &p.RoleName); err != nil {
			return nil, fmt.Errorf("error scanning participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, nil
}
