package main

import "memedir/cmd"

func main() {
	cmd.Execute()
}
