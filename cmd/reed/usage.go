package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: reed <command> [arguments]

Commands:
  run [program.json]   decode, resolve, and evaluate a compiled program;
                       with no argument, runs the manifest's entry
  deps                 fetch the manifest's dependencies and write the lockfile
  version              print the CLI version
  help                 print this message

A compiled program is the JSON syntax graph emitted by the Reed front end.`)
}
