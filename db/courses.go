package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/google/uuid"
)

// CreateCourse inserts a new course and returns the stored record.
func (r *RosterDB) CreateCourse(req *models.CourseRequest) (*models.Course, error) {
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

	courseID := uuid.New()
	createdAt := time.Now().UTC()

	err = r.execQuery(tx, `
		INSERT INTO courses (id, created_at, name, short_name, id_number)
		VALUES ($1, $2, $3, $4, $5)`,
		courseID, createdAt, req.Name, req.ShortName, req.IDNumber)
	if err != nil {
		return nil, fmt.Errorf("error inserting course: %w", err)
	}

	if err = r.CommitTransaction(tx); err != nil {
		return nil, err
	}

	course := models.Course{
		ID:        courseID,
		Name:      req.Name,
		ShortName: req.ShortName,
		IDNumber:  req.IDNumber,
		CreatedAt: createdAt,
	}

	return &course, nil
}

// GetCourse retrieves a single course by ID.
func (r *RosterDB) GetCourse(courseID uuid.UUID) (*models.Course, error) {
	query := `SELECT id, created_at, name, short_name, id_number FROM courses WHERE id = $1`
	row := r.DB.QueryRow(query, courseID)

	var c models.Course
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.Name, &c.ShortName, &c.IDNumber); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning course: %w", err)
	}
	return &c, nil
}

// GetCourseByShortName retrieves a single course by its unique short name.
// Used by the student information system feed, which identifies courses by
// short name rather than ID.
func (r *RosterDB) GetCourseByShortName(shortName string) (*models.Course, error) {
	query := `SELECT id, created_at, name, short_name, id_number FROM courses WHERE short_name = $1`
	row := r.DB.QueryRow(query, shortName)

	var c models.Course
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.Name, &c.ShortName, &c.IDNumber); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning course: %w", err)
	}
	return &c, nil
}

// GetAllCourses retrieves every course, ordered by short name.
func (r *RosterDB) GetAllCourses() ([]models.Course, error) {
	query := `SELECT id, created_at, name, short_name, id_number FROM courses ORDER BY short_name`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.Name, &c.ShortName, &c.IDNumber); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// GetUserCourses retrieves the courses the given user is enrolled in.
func (r *RosterDB) GetUserCourses(userID uuid.UUID) ([]models.Course, error) {
	query := `
		SELECT c.id, c.created_at, c.name, c.short_name, c.id_number
		FROM courses c
		INNER JOIN enrolments e ON e.course_id = c.id
		WHERE e.user_id = $1
		ORDER BY c.short_name`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.Name, &c.ShortName, &c.IDNumber); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// CheckCourseExists checks if a course with the specified short name already exists.
func (r *RosterDB) CheckCourseExists(shortName string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM courses WHERE short_name = $1)`
	var exists bool
	err := r.DB.QueryRow(query, shortName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course existence: %w", err)
	}
	return exists, nil
}

// DeleteCourse deletes a course by ID. Enrolments, groups and group members
// cascade with it.
func (r *RosterDB) DeleteCourse(courseID uuid.UUID) error {
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

	err = r.execQuery(tx, `DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		return fmt.Errorf("error executing delete query: %w", err)
	}

	if err = r.CommitTransaction(tx); err != nil {
		return err
	}

	return nil
}
