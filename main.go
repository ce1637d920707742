package main

import "github.com/zettelkit/zettelkit/cmd"

func main() {
	cmd.Execute()
}
