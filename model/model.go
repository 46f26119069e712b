package model

import (
	"time"

	"github.com/gofrs/uuid"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldPassword FieldType = "password"
	FieldCheckbox FieldType = "checkbox"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldEmail, FieldPassword, FieldCheckbox:
		return true
	}
	return false
}

type Form struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Fields    []Field   `json:"fields" bson:"fields"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Field struct {
	ID       string    `json:"id" bson:"_id"`
	Type     FieldType `json:"type" bson:"type"`
	Label    string    `json:"label" bson:"label"`
	Required bool      `json:"required" bson:"required"`
}

// FieldByID returns the first field of the form with the given id.
func (f Form) FieldByID(id string) (Field, bool) {
	for _, field := range f.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return Field{}, false
}

type Response struct {
	ID          string     `json:"id" bson:"_id"`
	FormID      string     `json:"formId" bson:"formId"`
	Answers     []Answer   `json:"responses" bson:"responses"`
	SubmittedAt time.Time  `json:"submittedAt" bson:"submittedAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

type Answer struct {
	FieldID string `json:"fieldId" bson:"fieldId"`
	Value   Value  `json:"value" bson:"value"`
}

// Answer returns the first answer given for fieldID.
func (r Response) Answer(fieldID string) (Answer, bool) {
	return FindAnswer(r.Answers, fieldID)
}

func FindAnswer(answers []Answer, fieldID string) (Answer, bool) {
	for _, a := range answers {
		if a.FieldID == fieldID {
			return a, true
		}
	}
	return Answer{}, false
}

// NewID generates an opaque identifier for forms, fields and responses.
func NewID() string {
	return uuid.Must(uuid.NewV4()).String()
}
