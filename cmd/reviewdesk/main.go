package main

import (
	"os"
)

func main() {
	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	root := newRootCommand(wiring)
	exitOnErr(root.CommandPath(), root.Execute(), wiring.stderr)
}
