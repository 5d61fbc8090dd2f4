package main

import "github.com/gwenf/tinysearch/internal/cli"

func main() {
	cli.Execute()
}
