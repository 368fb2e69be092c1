package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rocketscienceinc/tictactoe-console/internal/cmd"
)

// main - is the entry point of the application. It runs the root command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	root := cmd.Root()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		os.Exit(1)
	}
}
