package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+userMessage(err))
		os.Exit(1)
	}
}

func execute() error {
	root, closeApp := newRootCmd()
	defer closeApp()
	return root.Execute()
}
