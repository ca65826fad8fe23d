package main

import "github.com/bestgames/bestgames/cmd"

func main() {
	cmd.Execute()
}
