// Package main is the entry point for the owstats CLI, a personal Overwatch
// match tracker that logs games by hand and analyses winrates.
package main

import "github.com/pable/owstats/cmd"

func main() {
	cmd.Execute()
}
