package validation

import (
	"strconv"
	"testing"

	"github.com/mbolis/quick-forms/model"
	"github.com/stretchr/testify/assert"
)

func sequence() func() string {
	n := 0
	return func() string {
		n++
		return "new-" + strconv.Itoa(n)
	}
}

func ids(fields []model.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.ID
	}
	return out
}

func TestMergeFieldIDsKeepsKnownIDs(t *testing.T) {
	current := []model.Field{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	incoming := []model.Field{{ID: "c", Label: "C"}, {Label: "D"}, {ID: "a", Label: "A"}}

	merged := MergeFieldIDs(current, incoming, sequence())
	assert.Equal(t, []string{"c", "new-1", "a"}, ids(merged))
	assert.Equal(t, "C", merged[0].Label)
}

func TestMergeFieldIDsRejectsForeignAndDuplicateIDs(t *testing.T) {
	current := []model.Field{{ID: "a"}}
	incoming := []model.Field{{ID: "a"}, {ID: "a"}, {ID: "zzz"}}

	assert.Equal(t, []string{"a", "new-1", "new-2"}, ids(MergeFieldIDs(current, incoming, sequence())))
}

func TestMergeFieldIDsNeverReusesRemovedIDs(t *testing.T) {
	next := sequence()
	v1 := AssignFieldIDs([]model.Field{{Label: "Name"}}, next)
	v2 := MergeFieldIDs(v1, []model.Field{}, next)
	v3 := MergeFieldIDs(v2, []model.Field{{ID: v1[0].ID, Label: "Name"}}, next)

	assert.Empty(t, v2)
	assert.NotEqual(t, v1[0].ID, v3[0].ID)
}

func TestAssignFieldIDsIgnoresClientIDs(t *testing.T) {
	assert.Equal(t, []string{"new-1", "new-2"}, ids(AssignFieldIDs([]model.Field{{ID: "x"}, {}}, sequence())))
}
