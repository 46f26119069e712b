package model

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type ValueKind int

const (
	KindNull ValueKind = iota
	KindText
	KindFlag
	KindNumber
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindFlag:
		return "flag"
	case KindNumber:
		return "number"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is the value of an answer: text for most field types, a flag for
// checkboxes. The zero Value is null.
type Value struct {
	kind   ValueKind
	text   string
	flag   bool
	number float64
}

func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

func Flag(b bool) Value {
	return Value{kind: KindFlag, flag: b}
}

func Number(n float64) Value {
	return Value{kind: KindNumber, number: n}
}

func Null() Value {
	return Value{}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Text returns the textual value, and whether v holds text.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == KindText
}

// Flag returns the boolean value, and whether v holds a flag.
func (v Value) Flag() (bool, bool) {
	return v.flag, v.kind == KindFlag
}

// Truthy reports whether v counts as a supplied value: null, "", false and 0
// do not.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindText:
		return v.text != ""
	case KindFlag:
		return v.flag
	case KindNumber:
		return v.number == v.number && v.number != 0
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindFlag:
		return strconv.FormatBool(v.flag)
	case KindNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	}
	return ""
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindFlag:
		return json.Marshal(v.flag)
	case KindNumber:
		return json.Marshal(v.number)
	}
	return []byte("null"), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = Null()
	case bytes.Equal(data, []byte("true")):
		*v = Flag(true)
	case bytes.Equal(data, []byte("false")):
		*v = Flag(false)
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Number(n)
	default:
		return fmt.Errorf("value must be a string, boolean, number or null, got %s", data)
	}
	return nil
}

func (v Value) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch v.kind {
	case KindText:
		return bson.MarshalValue(v.text)
	case KindFlag:
		return bson.MarshalValue(v.flag)
	case KindNumber:
		return bson.MarshalValue(v.number)
	}
	return bsontype.Null, nil, nil
}

func (v *Value) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*v = Null()
	case bsontype.String:
		*v = Text(raw.StringValue())
	case bsontype.Boolean:
		*v = Flag(raw.Boolean())
	case bsontype.Double:
		*v = Number(raw.Double())
	case bsontype.Int32:
		*v = Number(float64(raw.Int32()))
	case bsontype.Int64:
		*v = Number(float64(raw.Int64()))
	default:
		return fmt.Errorf("unsupported value type %s", t)
	}
	return nil
}
