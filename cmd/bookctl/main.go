package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"booking-wizard/internal/cli"
)

func main() {
	_ = godotenv.Load()
	if err := cli.Execute(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "bookctl:", err)
		os.Exit(1)
	}
}
