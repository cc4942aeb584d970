package main

import "github.com/ArnaudCalmettes/fsiv/cmd"

func main() {
	cmd.Execute()
}
