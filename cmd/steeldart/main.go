package main

import "github.com/mjaasund/steeldart/internal/cli"

func main() {
	cli.Execute()
}
