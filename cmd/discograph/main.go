package main

import "github.com/mvp-joe/discograph/internal/cli"

func main() {
	cli.Execute()
}
