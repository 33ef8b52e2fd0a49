package main

import (
	"github.com/sidkik/solvecopy/cmd"
	"github.com/sidkik/solvecopy/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
