package main

import "github.com/pyq-dev/pyq/internal/cmd"

func main() {
	cmd.Execute()
}
