package main

import "github.com/varon/sercheck/cmd"

func main() {
	cmd.Execute()
}
