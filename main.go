package main

import "github.com/chriserin/ftfold/cmd"

func main() {
	cmd.Execute()
}
