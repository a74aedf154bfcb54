package wire

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/encoding/protowire"
)

// DefaultMaxDelimitedSize bounds the length prefix accepted by ReadDelimited.
const DefaultMaxDelimitedSize = 64 << 20

// ByteReader is the reader accepted by ReadDelimited.
type ByteReader = protodelim.Reader

// SizeError is returned when a length prefix exceeds the allowed size.
type SizeError = protodelim.SizeTooLargeError

var readDelimited = protodelim.UnmarshalOptions{MaxSize: DefaultMaxDelimitedSize}

// MarshalDelimited returns the encoding of m prefixed with its varint length.
func MarshalDelimited(m Message) ([]byte, error) {
	body, err := Marshal(m)
	if err != nil {
		return nil, err
	}
	b := protowire.AppendVarint(make([]byte, 0, len(body)+protowire.SizeVarint(uint64(len(body)))), uint64(len(body)))
	return append(b, body...), nil
}

// UnmarshalDelimited decodes one length prefixed message from the start of b
// and returns the number of bytes consumed.
func UnmarshalDelimited(b []byte, m Message) (int, error) {
	size, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, fmt.Errorf("unable to read length prefix: %w", protowire.ParseError(n))
	}
	if uint64(len(b)-n) < size {
		return 0, fmt.Errorf("unable to read delimited message: %w", io.ErrUnexpectedEOF)
	}
	end := n + int(size)
	if err := Unmarshal(b[n:end], m); err != nil {
		return 0, err
	}
	return end, nil
}

// WriteDelimited writes m to w prefixed with its varint length.
func WriteDelimited(w io.Writer, m Message) error {
	if isNil(m) {
		return ErrNilMessage
	}
	_, err := protodelim.MarshalOptions{MarshalOptions: deterministic}.MarshalTo(w, m)
	return err
}

// ReadDelimited reads one length prefixed message from r. It returns io.EOF
// when r is exhausted before the prefix.
func ReadDelimited(r ByteReader, m Message) error {
	if isNil(m) {
		return ErrNilMessage
	}
	err := readDelimited.UnmarshalFrom(r, m)
	if err == nil || errors.Is(err, io.EOF) {
		return err
	}
	var size *SizeError
	if errors.As(err, &size) {
		return err
	}
	return fmt.Errorf("unable to read delimited message: %w", err)
}

// NewReader buffers r for ReadDelimited.
func NewReader(r io.Reader) ByteReader {
	if br, ok := r.(ByteReader); ok {
		return br
	}
	return bufio.NewReader(r)
}
