package main

import "github.com/agentic-research/sqlgrid/cmd"

func main() {
	cmd.Execute()
}
