package models

// Member identifies a trip participant.
type Member struct {
	// ID is the unique identifier for the member within the platform.
	// Split, payer and settlement references all use this value.
	ID string

	// DisplayName is the human-readable name shown in summaries.
	// Optional; presentation falls back to ID when empty.
	DisplayName string
}

// MemberIDs returns the ids of the given members in roster order.
func MemberIDs(members []Member) []string {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return ids
}
