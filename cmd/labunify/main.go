package main

import "github.com/terraincognita07/labunify/internal/cli"

func main() {
	cli.Execute()
}
