package main

import "github.com/blogcore/blogd/cmd/blogd/commands"

func main() {
	commands.Execute()
}
