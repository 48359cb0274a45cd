package models

// Trip represents a group of members sharing expenses.
// The trip record itself is owned by the planning collaborator; the ledger
// keeps just enough of it to supply the member roster.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Lisbon 2026").
	Name string

	// Members is the current roster. Members can be added but not removed,
	// so every stored expense keeps referencing current members.
	Members []Member

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// HasMember reports whether memberID is on the trip roster.
func (t *Trip) HasMember(memberID string) bool {
	for _, m := range t.Members {
		if m.ID == memberID {
			return true
		}
	}
	return false
}
