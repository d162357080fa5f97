package main

import "facevault/cmd/facevault/cmd"

func main() {
	cmd.Execute()
}
