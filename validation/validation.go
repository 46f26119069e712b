// Package validation decides whether forms and responses may be persisted,
// and joins stored responses back to a form's current fields for display.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mbolis/quick-forms/model"
)

// SchemaError reports a form document that can not be stored.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return e.Path + ": " + e.Reason
}

// MissingFieldError reports a required field without a value.
type MissingFieldError struct {
	Field model.Field
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field.Label)
}

// ValidateForm checks title, field types and labels. All problems are reported
// together.
func ValidateForm(form model.Form) error {
	var result *multierror.Error
	if strings.TrimSpace(form.Title) == "" {
		result = multierror.Append(result, &SchemaError{"title", "is required"})
	}
	for i, f := range form.Fields {
		path := fmt.Sprintf("fields.%d", i)
		if f.Type == "" {
			result = multierror.Append(result, &SchemaError{path + ".type", "is required"})
		} else if !f.Type.Valid() {
			result = multierror.Append(result, &SchemaError{path + ".type", fmt.Sprintf("%q is not a valid field type", f.Type)})
		}
		if strings.TrimSpace(f.Label) == "" {
			result = multierror.Append(result, &SchemaError{path + ".label", "is required"})
		}
	}
	return result.ErrorOrNil()
}

// ValidateAnswers checks the shape of submitted answers: every pair names a
// field, and answers to fields of form carry a value of the kind the field
// type takes. Pairs for fields no longer in form are left alone.
func ValidateAnswers(form model.Form, answers []model.Answer) error {
	var result *multierror.Error
	for i, a := range answers {
		path := fmt.Sprintf("responses.%d", i)
		if strings.TrimSpace(a.FieldID) == "" {
			result = multierror.Append(result, &SchemaError{path + ".fieldId", "is required"})
			continue
		}
		f, ok := form.FieldByID(a.FieldID)
		if !ok || acceptsValue(f.Type, a.Value) {
			continue
		}
		result = multierror.Append(result, &SchemaError{
			path + ".value",
			fmt.Sprintf("%s value not allowed for %s field %q", a.Value.Kind(), f.Type, f.Label),
		})
	}
	return result.ErrorOrNil()
}

// acceptsValue reports whether a field of type t may hold v. Checkboxes take
// flags, other fields take text or numbers; null is always allowed. Clients
// post "" for an untouched checkbox, so that is taken as unchecked.
func acceptsValue(t model.FieldType, v model.Value) bool {
	switch v.Kind() {
	case model.KindNull:
		return true
	case model.KindFlag:
		return t == model.FieldCheckbox
	case model.KindText:
		if t == model.FieldCheckbox {
			s, _ := v.Text()
			return s == ""
		}
		return true
	case model.KindNumber:
		return t != model.FieldCheckbox
	}
	return false
}

// ValidateResponse checks that every required field of form has a truthy
// answer. The returned error lists every failing field, in form order.
func ValidateResponse(form model.Form, answers []model.Answer) error {
	var result *multierror.Error
	for _, f := range form.Fields {
		if !f.Required {
			continue
		}
		a, ok := model.FindAnswer(answers, f.ID)
		if !ok || !a.Value.Truthy() {
			result = multierror.Append(result, &MissingFieldError{f})
		}
	}
	return result.ErrorOrNil()
}

// MissingLabels extracts the labels of the missing fields reported by
// ValidateResponse. It returns nil if err carries none.
func MissingLabels(err error) []string {
	var labels []string
	for _, e := range flatten(err) {
		var missing *MissingFieldError
		if errors.As(e, &missing) {
			labels = append(labels, missing.Field.Label)
		}
	}
	return labels
}

// Messages returns the individual messages of an aggregated error.
func Messages(err error) []string {
	var msgs []string
	for _, e := range flatten(err) {
		msgs = append(msgs, e.Error())
	}
	return msgs
}

func flatten(err error) []error {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return merr.WrappedErrors()
	}
	return []error{err}
}
