package main

import "github.com/aranyoray/curiousmails/internal/cli"

func main() {
	cli.Execute()
}
