package validation

import "github.com/mbolis/quick-forms/model"

// MergeFieldIDs assigns identifiers to the incoming fields of a form being
// replaced. A field keeps its id only if that id belongs to one of the current
// fields, and only once; every other field gets a fresh id from newID. The
// incoming order is kept.
func MergeFieldIDs(current, incoming []model.Field, newID func() string) []model.Field {
	known := make(map[string]bool, len(current))
	for _, f := range current {
		known[f.ID] = true
	}

	merged := make([]model.Field, len(incoming))
	for i, f := range incoming {
		if f.ID == "" || !known[f.ID] {
			f.ID = newID()
		} else {
			delete(known, f.ID)
		}
		merged[i] = f
	}
	return merged
}

// AssignFieldIDs gives every field of a new form a fresh id.
func AssignFieldIDs(fields []model.Field, newID func() string) []model.Field {
	return MergeFieldIDs(nil, fields, newID)
}
