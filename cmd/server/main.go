package main

import "github.com/neeltheduck/Stevens-Skyline-Socials/cmd/server/cmd"

func main() {
	cmd.Execute()
}
