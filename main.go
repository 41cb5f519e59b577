package main

import "github.com/chazu/solidkit/cmd"

func main() {
	cmd.Execute()
}
