package wire

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// FileDescriptorProto returns the descriptor of a proto file linked into the
// binary, such as "google/bigtable/admin/v2/table.proto".
func FileDescriptorProto(path string) (*descriptorpb.FileDescriptorProto, bool) {
	fd, err := protoregistry.GlobalFiles.FindFileByPath(path)
	if err != nil {
		return nil, false
	}
	return protodesc.ToFileDescriptorProto(fd), true
}

// FindMessage returns the runtime type of a message linked into the binary.
func FindMessage(name protoreflect.FullName) (protoreflect.MessageType, error) {
	mt, err := protoregistry.GlobalTypes.FindMessageByName(name)
	if err != nil {
		return nil, fmt.Errorf("unknown message %s: %w", name, err)
	}
	return mt, nil
}
