// Package wire holds the small message helpers shared by the gateways and the
// rpc stubs. The messages themselves are the generated admin and long-running
// operation bindings; this package only adds deterministic encoding, plain
// object conversion, verification and length delimited streams on top of the
// protobuf runtime.
package wire

import (
	"errors"
	"fmt"
	"sort"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Message is any generated protobuf message.
type Message = proto.Message

// ErrNilMessage is returned when a nil message is passed where one is required.
var ErrNilMessage = errors.New("wire: nil message")

var deterministic = proto.MarshalOptions{Deterministic: true}

// Marshal returns the binary encoding of m. Map entries are written in key
// order so equal messages encode to equal bytes.
func Marshal(m Message) ([]byte, error) {
	if isNil(m) {
		return nil, ErrNilMessage
	}
	return deterministic.Marshal(m)
}

// Unmarshal resets m and decodes b into it.
func Unmarshal(b []byte, m Message) error {
	if isNil(m) {
		return ErrNilMessage
	}
	if err := proto.Unmarshal(b, m); err != nil {
		return fmt.Errorf("unable to decode %s: %w", Name(m), err)
	}
	return nil
}

// Merge decodes b into m without clearing fields that are already set.
func Merge(b []byte, m Message) error {
	if isNil(m) {
		return ErrNilMessage
	}
	if err := (proto.UnmarshalOptions{Merge: true}).Unmarshal(b, m); err != nil {
		return fmt.Errorf("unable to decode %s: %w", Name(m), err)
	}
	return nil
}

// Name is the fully qualified protobuf name of m.
func Name(m Message) protoreflect.FullName {
	return m.ProtoReflect().Descriptor().FullName()
}

// Which returns the JSON name of the member set in the named oneof of m, or
// "" when no member is set.
func Which(m Message, oneof protoreflect.Name) string {
	if isNil(m) {
		return ""
	}
	pm := m.ProtoReflect()
	od := pm.Descriptor().Oneofs().ByName(oneof)
	if od == nil {
		return ""
	}
	if fd := pm.WhichOneof(od); fd != nil {
		return fd.JSONName()
	}
	return ""
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isNil(m Message) bool {
	return m == nil || !m.ProtoReflect().IsValid()
}
