package main

import "github.com/mcoot/timeu6/internal/cli"

func main() {
	cli.Execute()
}
