package main

import "github.com/chriserin/testpick/cmd"

func main() {
	cmd.Execute()
}
