package main

import (
	"github.com/sameerd/alphafold3/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
