// Package main is the entry point for the fastcheck CLI.
package main

import "fastcheck.dev/pkg/fastcheck/cmd"

func main() {
	cmd.Execute()
}
