// Package main is the entry point of csim, a set-associative cache
// simulator that replays valgrind memory traces.
package main

import "github.com/sarchlab/cachesim/csim/cmd"

func main() {
	cmd.Execute()
}
