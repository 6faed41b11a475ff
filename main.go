package main

import "github.com/scansec/scansec/cmd"

func main() {
	cmd.Execute()
}
