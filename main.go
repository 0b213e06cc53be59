package main

import (
	"os"

	"pplc/cmd"
)

func main() {
	os.Exit(cmd.RunCompiler())
}
