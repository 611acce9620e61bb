package visibility

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Level controls who can see a group and its membership. Levels are ordered
// from most to least exposed and stored numerically in the database.
type Level int

const (
	// All makes the group visible to everyone in the course.
	All Level = iota
	// Members restricts the group to its own members.
	Members
	// Own lets each member see only their own membership.
	Own
	// None hides the group from everyone without the bypass.
	None
)

func (l Level) String() string {
	switch l {
	case All:
		return "all"
	case Members:
		return "members"
	case Own:
		return "own"
	case None:
		return "none"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel converts the wire form of a level back to its numeric value.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "all":
		return All, nil
	case "members":
		return Members, nil
	case "own":
		return Own, nil
	case "none":
		return None, nil
	}
	return 0, fmt.Errorf("unknown visibility level %q", s)
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= All && l <= None
}

// AllowsParticipation reports whether a group at this level may be flagged as
// a participation group. Groups hidden from their own members cannot be used
// for activity grouping.
func (l Level) AllowsParticipation() bool {
	return l == All || l == Members
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Value implements driver.Valuer so levels are stored as smallints.
func (l Level) Value() (driver.Value, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid visibility level %d", int(l))
	}
	return int64(l), nil
}

// Scan implements sql.Scanner.
func (l *Level) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		level := Level(v)
		if !level.Valid() {
			return fmt.Errorf("invalid visibility level %d", v)
		}
		*l = level
		return nil
	default:
		return fmt.Errorf("cannot scan %T into visibility.Level", src)
	}
}
