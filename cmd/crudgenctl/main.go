package main

import "crudgen/cmd/crudgenctl/cmd"

func main() {
	cmd.Execute()
}
