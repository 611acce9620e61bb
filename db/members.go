package db

import (
	"fmt"
	"time"

	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/google/uuid"
)

// AddGroupMember records a user's membership of a group.
func (r *RosterDB) AddGroupMember(groupID, userID uuid.UUID) error {
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

	err = r.execQuery(tx, `
		INSERT INTO group_members (group_id, user_id, time_added)
		VALUES ($1, $2, $3)`,
		groupID, userID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error inserting group member: %w", err)
	}

	if err = r.CommitTransaction(tx); err != nil {
		return err
	}

	return nil
}

// RemoveGroupMember deletes a user's membership of a group. Returns
// ErrNotFound when the user was not a member.
func (r *RosterDB) RemoveGroupMember(groupID, userID uuid.UUID) error {
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

	res, execErr := tx.Exec(`DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if execErr != nil {
		err = fmt.Errorf("error deleting group member: %w", execErr)
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

// CheckGroupMemberExists checks if the user is already a member of the group.
func (r *RosterDB) CheckGroupMemberExists(groupID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`
	var exists bool
	err := r.DB.QueryRow(query, groupID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking group member existence: %w", err)
	}
	return exists, nil
}

// GetGroupMembers retrieves the users belonging to a group, ordered by
// display name.
func (r *RosterDB) GetGroupMembers(groupID uuid.UUID) ([]models.User, error) {
	query := `
		SELECT u.id, u.username, u.display_name, u.email
		FROM group_members gm
		INNER JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY u.display_name, u.username`
	rows, err := r.DB.Query(query, groupID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving group members: %w", err)
	}
	defer rows.Close()

	var members []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email); err != nil {
			return nil, fmt.Errorf("error scanning group member: %w", err)
		}
		members = append(members, u)
	}
	return members, nil
}

// GetCourseMemberships retrieves every group membership edge of a course.
// Feeds the visibility filter when the roster is assembled.
func (r *RosterDB) GetCourseMemberships(courseID uuid.UUID) ([]models.GroupMember, error) {
	query := `
		SELECT gm.group_id, gm.user_id, gm.time_added
		FROM group_members gm
		INNER JOIN groups g ON g.id = gm.group_id
		WHERE g.course_id = $1`
	rows, err := r.DB.Query(query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving memberships: %w", err)
	}
	defer rows.Close()

	var memberships []models.GroupMember
	for rows.Next() {
		var m models.GroupMember
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.TimeAdded); err != nil {
			return nil, fmt.Errorf("error scanning membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	return memberships, nil
}

// GetOrphanMemberships retrieves membership edges whose user is no longer
// enrolled in the group's course. External writers can unenrol users without
// going through this service; the reconcile job prunes what they leave behind.
func (r *RosterDB) GetOrphanMemberships() ([]models.OrphanMembership, error) {
	query := `
		SELECT gm.group_id, gm.user_id, g.course_id
		FROM group_members gm
		INNER JOIN groups g ON g.id = gm.group_id
		LEFT JOIN enrolments e ON e.course_id = g.course_id AND e.user_id = gm.user_id
		WHERE e.user_id IS NULL`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving orphan memberships: %w", err)
	}
	defer rows.Close()

	var orphans []models.OrphanMembership
	for rows.Next() {
		var o models.OrphanMembership
		if err := rows.Scan(&o.GroupID, &o.UserID, &o.CourseID); err != nil {
			return nil, fmt.Errorf("error scanning orphan membership: %w", err)
		}
		orphans = append(orphans, o)
	}
	return orphans, nil
}
