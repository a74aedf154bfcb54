package wire

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/anypb"
)

const typeURLPrefix = "type.googleapis.com/"

// TypeURL returns the Any type URL for the named message.
func TypeURL(name protoreflect.FullName) string {
	return typeURLPrefix + string(name)
}

// MarshalAny packs m into an Any.
func MarshalAny(m Message) (*anypb.Any, error) {
	if isNil(m) {
		return nil, ErrNilMessage
	}
	return anypb.New(m)
}

// UnmarshalAny unpacks a into m. The type URL must name m's message.
func UnmarshalAny(a *anypb.Any, m Message) error {
	if a == nil || isNil(m) {
		return ErrNilMessage
	}
	if !IsAny(a, Name(m)) {
		return fmt.Errorf("mismatched message type: got %q, want %q", a.GetTypeUrl(), Name(m))
	}
	return a.UnmarshalTo(m)
}

// IsAny reports whether a holds a message with the given name.
func IsAny(a *anypb.Any, name protoreflect.FullName) bool {
	url := a.GetTypeUrl()
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		url = url[i+1:]
	}
	return protoreflect.FullName(url) == name
}

// Format renders m in the compact text format for logs and test failures.
// The output is not stable across releases.
func Format(m Message) string {
	if isNil(m) {
		return "<nil>"
	}
	return prototext.MarshalOptions{}.Format(m)
}
