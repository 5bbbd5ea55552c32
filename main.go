package main

import "github.com/twiced-technology-gmbh/malt/cmd"

func main() {
	cmd.Execute()
}
