// Package main is the entry point for the evosuite CLI.
package main

import "github.com/Bachenbenno/evosuite/cmd"

func main() {
	cmd.Execute()
}
