package main

import "github.com/luthersystems/tlisp/cmd"

func main() {
	cmd.Execute()
}
