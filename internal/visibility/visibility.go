// Package visibility decides which course groups a viewer may see for each
// participant on the roster.
package visibility

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// NoGroupsLabel is rendered when a viewer sees no groups for a participant.
const NoGroupsLabel = "No groups"

// Group is the snapshot of a course group the filter operates on.
type Group struct {
	ID    uuid.UUID
	Name  string
	Level Level
}

// Membership is one user-group edge.
type Membership struct {
	GroupID uuid.UUID
	UserID  uuid.UUID
}

// Viewer identifies who is looking at the roster. CanSeeAllGroups is set for
// course teachers and platform admins and bypasses every level restriction.
type Viewer struct {
	UserID          uuid.UUID
	CanSeeAllGroups bool
}

// index maps group ID to the set of its member IDs.
type index map[uuid.UUID]map[uuid.UUID]struct{}

func buildIndex(memberships []Membership) index {
	idx := make(index)
	for _, m := range memberships {
		members, ok := idx[m.GroupID]
		if !ok {
			members = make(map[uuid.UUID]struct{})
			idx[m.GroupID] = members
		}
		members[m.UserID] = struct{}{}
	}
	return idx
}

func (idx index) isMember(groupID, userID uuid.UUID) bool {
	_, ok := idx[groupID][userID]
	return ok
}

// canSee applies the level rules for one group and one target user.
func canSee(viewer Viewer, target uuid.UUID, g Group, idx index) bool {
	if viewer.CanSeeAllGroups {
		return true
	}
	switch g.Level {
	case All:
		return true
	case Members:
		return idx.isMember(g.ID, viewer.UserID)
	case Own:
		return viewer.UserID == target && idx.isMember(g.ID, viewer.UserID)
	case None:
		return false
	}
	return false
}

// VisibleGroups returns the groups of target that viewer is allowed to see,
// ordered by name. Only groups target belongs to are considered.
func VisibleGroups(viewer Viewer, target uuid.UUID, groups []Group, memberships []Membership) []Group {
	return visibleGroups(viewer, target, groups, buildIndex(memberships))
}

func visibleGroups(viewer Viewer, target uuid.UUID, groups []Group, idx index) []Group {
	out := make([]Group, 0)
	for _, g := range groups {
		if !idx.isMember(g.ID, target) {
			continue
		}
		if canSee(viewer, target, g, idx) {
			out = append(out, g)
		}
	}
	sortGroups(out)
	return out
}

// Roster evaluates VisibleGroups for every target, sharing one membership
// index across the whole course.
func Roster(viewer Viewer, targets []uuid.UUID, groups []Group, memberships []Membership) map[uuid.UUID][]Group {
	idx := buildIndex(memberships)
	out := make(map[uuid.UUID][]Group, len(targets))
	for _, target := range targets {
		out[target] = visibleGroups(viewer, target, groups, idx)
	}
	return out
}

// VisibleToViewer reports whether the group itself may appear in a listing
// shown to viewer. Hidden groups must not leak their existence. The listing
// rule is the roster rule with the viewer as their own target.
func VisibleToViewer(viewer Viewer, g Group, memberships []Membership) bool {
	return canSee(viewer, viewer.UserID, g, buildIndex(memberships))
}

// FilterListable returns the subset of groups that may appear in a group
// listing shown to viewer, ordered by name.
func FilterListable(viewer Viewer, groups []Group, memberships []Membership) []Group {
	idx := buildIndex(memberships)
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		if canSee(viewer, viewer.UserID, g, idx) {
			out = append(out, g)
		}
	}
	sortGroups(out)
	return out
}

// VisibleMembers returns the member IDs of g that viewer may see listed. In
// an "own" group a viewer without the bypass sees only themselves.
func VisibleMembers(viewer Viewer, g Group, memberIDs []uuid.UUID, memberships []Membership) []uuid.UUID {
	idx := buildIndex(memberships)
	out := make([]uuid.UUID, 0, len(memberIDs))
	for _, id := range memberIDs {
		if canSee(viewer, id, g, idx) {
			out = append(out, id)
		}
	}
	return out
}

// Label renders the comma separated group names shown on a roster row, or
// NoGroupsLabel when the set is empty.
func Label(groups []Group) string {
	if len(groups) == 0 {
		return NoGroupsLabel
	}
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return strings.Join(names, ", ")
}

func sortGroups(groups []Group) {
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Name != groups[j].Name {
			return groups[i].Name < groups[j].Name
		}
		return groups[i].ID.String() < groups[j].ID.String()
	})
}
