package main

import "vibranium/internal/cli"

func main() {
	cli.Execute()
}
