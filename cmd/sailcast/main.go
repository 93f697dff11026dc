package main

import "github.com/mlebrun/sailcast/internal/cli"

func main() {
	cli.Execute()
}
