package main

import (
	"context"
	"fmt"
	"os"

	"study_assistant/internal/app"
)

func main() {
	if err := app.Execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
