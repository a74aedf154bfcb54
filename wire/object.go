package wire

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/reflect/protoreflect"
)

var (
	jsonMarshal   = protojson.MarshalOptions{}
	jsonUnmarshal = protojson.UnmarshalOptions{}
)

// Object is the plain JSON-like form of a message: field names in lowerCamel,
// 64-bit integers and bytes as strings, enums by name.
type Object = map[string]interface{}

// MarshalJSON returns the canonical proto3 JSON form of m.
func MarshalJSON(m Message) ([]byte, error) {
	if isNil(m) {
		return nil, ErrNilMessage
	}
	return jsonMarshal.Marshal(m)
}

// UnmarshalJSON resets m and fills it from canonical proto3 JSON.
func UnmarshalJSON(b []byte, m Message) error {
	if isNil(m) {
		return ErrNilMessage
	}
	if err := jsonUnmarshal.Unmarshal(b, m); err != nil {
		return fmt.Errorf("invalid %s: %w", Name(m), err)
	}
	return nil
}

// ToObject converts m to its plain object form.
func ToObject(m Message) (Object, error) {
	b, err := MarshalJSON(m)
	if err != nil {
		return nil, err
	}
	obj := Object{}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// FromObject resets m and fills it from a plain object. Values are coerced
// the way proto3 JSON allows, so numbers may be given as strings and enums
// by name or number.
func FromObject(obj Object, m Message) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("invalid object: %w", err)
	}
	return UnmarshalJSON(b, m)
}

// Verify reports whether obj is a structurally valid plain object for the
// named message. Unknown fields, values of the wrong type and more than one
// member of a oneof are rejected.
func Verify(name protoreflect.FullName, obj Object) error {
	mt, err := FindMessage(name)
	if err != nil {
		return err
	}
	return FromObject(obj, mt.New().Interface())
}
