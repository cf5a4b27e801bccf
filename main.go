package main

import "github.com/repoghost/repoghost/cmd"

func main() {
	cmd.Execute()
}
