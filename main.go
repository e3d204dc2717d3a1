package main

import (
	"os"

	"github.com/idlesign/mednsktest/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
