package main

import "github.com/rohingrover/absuma/cmd"

func main() {
	cmd.Execute()
}
