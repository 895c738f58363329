package main

import "PinguinAgent/cmd"

func main() {
	cmd.Execute()
}
