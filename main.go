package main

import "github.com/datastax/bigtable-admin-apis/cmd"

func main() {
	cmd.Execute()
}
