package main

import "adler/cmd/adler-cli/cmd"

func main() {
	cmd.Execute()
}
