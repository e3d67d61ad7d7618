package main

import "github.com/brainbreak/brainbreak-api/internal/cli"

func main() {
	cli.Execute()
}
