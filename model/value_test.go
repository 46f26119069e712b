package model

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestValueUnmarshalJSON(t *testing.T) {
	var answers []Answer
	err := json.Unmarshal([]byte(`[
		{"fieldId": "a", "value": "Ann"},
		{"fieldId": "b", "value": true},
		{"fieldId": "c", "value": false},
		{"fieldId": "d", "value": null},
		{"fieldId": "e", "value": 0},
		{"fieldId": "f"}
	]`), &answers)
	require.NoError(t, err)
	require.Len(t, answers, 6)

	text, ok := answers[0].Value.Text()
	assert.True(t, ok)
	assert.Equal(t, "Ann", text)

	flag, ok := answers[1].Value.Flag()
	assert.True(t, ok)
	assert.True(t, flag)

	flag, ok = answers[2].Value.Flag()
	assert.True(t, ok)
	assert.False(t, flag)

	assert.True(t, answers[3].Value.IsNull())
	assert.Equal(t, KindNumber, answers[4].Value.Kind())
	assert.True(t, answers[5].Value.IsNull())
}

func TestValueUnmarshalJSONRejectsObjects(t *testing.T) {
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &v))
}

func TestValueMarshalJSON(t *testing.T) {
	data, err := json.Marshal([]Value{Text("x"), Flag(false), Null(), Number(2.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `["x", false, null, 2.5]`, string(data))
}

func TestValueTruthy(t *testing.T) {
	assert.False(t, Null().Truthy())
	assert.False(t, Text("").Truthy())
	assert.False(t, Flag(false).Truthy())
	assert.False(t, Number(0).Truthy())

	assert.True(t, Text(" ").Truthy())
	assert.True(t, Text("0").Truthy())
	assert.True(t, Flag(true).Truthy())
	assert.True(t, Number(-1).Truthy())
}

func TestValueBSON(t *testing.T) {
	in := Response{
		ID:     "r1",
		FormID: "f1",
		Answers: []Answer{
			{FieldID: "a", Value: Text("Ann")},
			{FieldID: "b", Value: Flag(true)},
			{FieldID: "c", Value: Null()},
		},
	}
	data, err := bson.Marshal(in)
	require.NoError(t, err)

	var out Response
	require.NoError(t, bson.Unmarshal(data, &out))
	require.Len(t, out.Answers, 3)
	assert.Equal(t, Text("Ann"), out.Answers[0].Value)
	assert.Equal(t, Flag(true), out.Answers[1].Value)
	assert.True(t, out.Answers[2].Value.IsNull())
}

func TestFieldTypeValid(t *testing.T) {
	for _, ft := range []FieldType{FieldText, FieldEmail, FieldPassword, FieldCheckbox} {
		assert.True(t, ft.Valid(), ft)
	}
	assert.False(t, FieldType("number").Valid())
	assert.False(t, FieldType("").Valid())
}

func TestFindAnswerReturnsFirstMatch(t *testing.T) {
	r := Response{Answers: []Answer{
		{FieldID: "a", Value: Text("first")},
		{FieldID: "a", Value: Text("second")},
	}}
	a, ok := r.Answer("a")
	require.True(t, ok)
	assert.Equal(t, Text("first"), a.Value)

	_, ok = r.Answer("zz")
	assert.False(t, ok)
}

func TestFormFieldByID(t *testing.T) {
	form := Form{Fields: []Field{
		{ID: "a", Label: "A"},
		{ID: "b", Label: "B"},
	}}
	f, ok := form.FieldByID("b")
	assert.True(t, ok)
	assert.Equal(t, "B", f.Label)

	_, ok = form.FieldByID("c")
	assert.False(t, ok)
}
