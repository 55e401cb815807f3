package history

// Policy selects how consecutive records are grouped into one undo step.
// The exact grouping boundary is a UX heuristic, not a contract; callers
// declare boundaries explicitly with Journal.Break.
type Policy uint8

const (
	// PolicyNone records every mutation as its own undo step.
	PolicyNone Policy = iota

	// PolicyAdjacent merges consecutive single-byte overwrites that target
	// the same cell or the cell immediately after the previous record.
	// This keeps hex-digit typing at user-action undo granularity.
	PolicyAdjacent
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyAdjacent:
		return "adjacent"
	default:
		return "none"
	}
}

// ParsePolicy maps a config string to a Policy. Unknown values select
// PolicyAdjacent, the default.
func ParsePolicy(s string) Policy {
	switch s {
	case "none", "off":
		return PolicyNone
	default:
		return PolicyAdjacent
	}
}

// coalesce merges next into prev if the policy allows it.
// Returns true when the merge happened and next must not be appended.
func coalesce(policy Policy, prev, next *Record) bool {
	if policy != PolicyAdjacent {
		return false
	}
	if !prev.IsReplace() || !next.IsReplace() {
		return false
	}
	if len(next.Old) != 1 || len(next.New) != 1 {
		return false
	}

	end := prev.Offset + ByteOffset(len(prev.New))
	switch next.Offset {
	case end:
		// Overwrite of the cell right after the previous record: typing
		// forward through consecutive cells. Only valid while the record
		// is a pure in-place overwrite.
		if len(prev.Old) != len(prev.New) {
			return false
		}
		prev.Old = append(prev.Old, next.Old...)
		prev.New = append(prev.New, next.New...)
	case end - 1:
		// Re-typing the last cell (e.g. the second nibble of a hex digit
		// pair). The cell's original byte is already in Old.
		prev.New[len(prev.New)-1] = next.New[0]
	default:
		return false
	}

	prev.Timestamp = next.Timestamp
	return true
}
