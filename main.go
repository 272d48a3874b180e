package main

import "github.com/frahmantamala/edumaster/cmd"

func main() {
	cmd.Execute()
}
