package main

import "hourbook/cmd"

func main() {
	cmd.Execute()
}
