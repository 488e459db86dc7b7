package main

import (
	"schema-sync/cmd"

	_ "github.com/lib/pq"
)

func main() {
	cmd.Execute()
}
