package validation

import (
	"time"

	"github.com/mbolis/quick-forms/model"
)

// Absent is displayed for fields that have no answer.
const Absent = "-"

type CellState string

const (
	StateAbsent  CellState = "absent"
	StatePresent CellState = "present"
)

type Cell struct {
	Field model.Field
	State CellState
	Value model.Value
}

// Display renders the cell: "Yes"/"No" for checkboxes, the text otherwise,
// and Absent when there is nothing to show.
func (c Cell) Display() string {
	if c.State == StateAbsent {
		return Absent
	}
	if c.Field.Type == model.FieldCheckbox {
		if c.Value.IsNull() {
			return Absent
		}
		if c.Value.Truthy() {
			return "Yes"
		}
		return "No"
	}
	switch c.Value.Kind() {
	case model.KindNull:
		return Absent
	case model.KindText:
		if s, _ := c.Value.Text(); s != "" {
			return s
		}
		return Absent
	case model.KindFlag:
		if b, _ := c.Value.Flag(); b {
			return "Yes"
		}
		return "No"
	case model.KindNumber:
		return c.Value.String()
	}
	return Absent
}

type Row struct {
	ResponseID  string
	SubmittedAt time.Time
	Cells       []Cell
}

// Reconcile matches the answers of resp to the current fields of form, in
// field order. Answers for fields no longer in the form are dropped and fields
// without an answer are absent, so a response recorded against an older
// version of the form still renders.
func Reconcile(form model.Form, resp model.Response) Row {
	row := Row{
		ResponseID:  resp.ID,
		SubmittedAt: resp.SubmittedAt,
		Cells:       make([]Cell, 0, len(form.Fields)),
	}
	for _, f := range form.Fields {
		cell := Cell{Field: f, State: StateAbsent}
		if a, ok := resp.Answer(f.ID); ok {
			cell.State = StatePresent
			cell.Value = a.Value
		}
		row.Cells = append(row.Cells, cell)
	}
	return row
}

func ReconcileAll(form model.Form, responses []model.Response) []Row {
	rows := make([]Row, len(responses))
	for i, resp := range responses {
		rows[i] = Reconcile(form, resp)
	}
	return rows
}
