package main

import "github.com/foodsaid/qrgen/internal/cli"

func main() {
	cli.Execute()
}
