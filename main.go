package main

import "github.com/theirongolddev/horizon/cmd"

func main() {
	cmd.Execute()
}
