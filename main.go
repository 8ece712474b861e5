package main

import "github.com/notargets/febasis/cmd"

func main() {
	cmd.Execute()
}
