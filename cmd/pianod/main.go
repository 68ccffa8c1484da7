package main

import "github.com/leandrodaf/piano/cmd/pianod/cmd"

func main() {
	cmd.Execute()
}
