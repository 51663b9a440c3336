package main

import "github.com/ridecircle/sessionkit/cmd/sessionctl/cmd"

func main() {
	cmd.Execute()
}
