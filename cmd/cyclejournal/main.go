package main

import (
	"context"
	"os"

	"github.com/terraincognita07/cyclejournal/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
