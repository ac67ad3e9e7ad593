package main

import "cba/cmd"

func main() {
	cmd.Execute()
}
