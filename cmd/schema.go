package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"cloud.google.com/go/longrunning/autogen/longrunningpb"
	"github.com/datastax/bigtable-admin-apis/wire"
)

var schemaFiles = []string{
	longrunningpb.File_google_longrunning_operations_proto.Path(),
	adminpb.File_google_bigtable_admin_v2_table_proto.Path(),
	adminpb.File_google_bigtable_admin_v2_bigtable_table_admin_proto.Path(),
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [FILE...]",
		Short: "Print the descriptors of the admin API as JSON",
		Long:  "Print the descriptors of the admin API as JSON. Without arguments every file is printed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := describeFiles(args)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func describeFiles(paths []string) (string, error) {
	if len(paths) == 0 {
		paths = schemaFiles
	}
	opts := protojson.MarshalOptions{Multiline: true, Indent: "  "}

	out := ""
	for _, path := range paths {
		fd, ok := wire.FileDescriptorProto(path)
		if !ok {
			return "", fmt.Errorf("unknown file %s, options: %v", path, schemaFiles)
		}
		b, err := opts.Marshal(fd)
		if err != nil {
			return "", err
		}
		out += string(b) + "\n"
	}
	return out, nil
}
