package validation

import (
	"testing"
	"time"

	"github.com/mbolis/quick-forms/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func displays(row Row) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.Display()
	}
	return out
}

func TestReconcileFollowsFieldOrder(t *testing.T) {
	resp := model.Response{
		ID:          "r1",
		SubmittedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Answers: []model.Answer{
			{FieldID: "subscribe", Value: model.Flag(true)},
			{FieldID: "email", Value: model.Text("ann@example.com")},
			{FieldID: "name", Value: model.Text("Ann")},
		},
	}
	row := Reconcile(contactForm(), resp)
	assert.Equal(t, "r1", row.ResponseID)
	assert.Equal(t, resp.SubmittedAt, row.SubmittedAt)
	assert.Equal(t, []string{"Ann", "ann@example.com", "Yes"}, displays(row))
}

func TestReconcileCheckboxTriState(t *testing.T) {
	form := contactForm()
	yes := Reconcile(form, model.Response{Answers: []model.Answer{{FieldID: "subscribe", Value: model.Flag(true)}}})
	no := Reconcile(form, model.Response{Answers: []model.Answer{{FieldID: "subscribe", Value: model.Flag(false)}}})
	absent := Reconcile(form, model.Response{})

	assert.Equal(t, "Yes", yes.Cells[2].Display())
	assert.Equal(t, "No", no.Cells[2].Display())
	assert.Equal(t, StatePresent, no.Cells[2].State)
	assert.Equal(t, Absent, absent.Cells[2].Display())
	assert.Equal(t, StateAbsent, absent.Cells[2].State)
}

func TestReconcileToleratesDrift(t *testing.T) {
	resp := model.Response{Answers: []model.Answer{
		{FieldID: "removed", Value: model.Text("stale")},
		{FieldID: "name", Value: model.Text("Ann")},
	}}
	row := Reconcile(contactForm(), resp)
	require.Len(t, row.Cells, 3)
	assert.Equal(t, []string{"Ann", Absent, Absent}, displays(row))

	empty := Reconcile(model.Form{}, resp)
	assert.Empty(t, empty.Cells)
}

func TestReconcileIsIdempotent(t *testing.T) {
	resp := model.Response{Answers: []model.Answer{{FieldID: "name", Value: model.Text("Ann")}}}
	form := contactForm()
	assert.Equal(t, Reconcile(form, resp), Reconcile(form, resp))
}

func TestCellDisplayText(t *testing.T) {
	field := model.Field{Type: model.FieldText}
	assert.Equal(t, Absent, Cell{Field: field, State: StatePresent, Value: model.Text("")}.Display())
	assert.Equal(t, Absent, Cell{Field: field, State: StatePresent}.Display())
	assert.Equal(t, "42", Cell{Field: field, State: StatePresent, Value: model.Number(42)}.Display())
	assert.Equal(t, "No", Cell{Field: field, State: StatePresent, Value: model.Flag(false)}.Display())
}

func TestReconcileAll(t *testing.T) {
	rows := ReconcileAll(contactForm(), []model.Response{{ID: "a"}, {ID: "b"}})
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].ResponseID)
	assert.Equal(t, "b", rows[1].ResponseID)
}
