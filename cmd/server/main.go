package main

import "github.com/The-UnknownHacker/daydream-sydney-db/cmd/server/cmd"

func main() {
	cmd.Execute()
}
