package main

import "focal/cmd/focal-cli/cmd"

func main() {
	cmd.Execute()
}
