package main

import "cinelibri/cmd/api-server/command"

func main() {
	command.Execute()
}
