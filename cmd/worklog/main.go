package main

import "worktrackersvr/work-tracker/internal/cli"

func main() {
	cli.Execute()
}
