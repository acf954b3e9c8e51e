package main

import "github.com/hueful/hueful/internal/cli"

func main() {
	cli.Execute()
}
