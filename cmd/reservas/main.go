package main // Entry point package

import (
	"fmt"
	"os"

	"github.com/joho/godotenv" // optional .env loader

	"github.com/iliyamo/restaurant-reservations/internal/cmd" // cobra commands
)

var version = "0.1.0"

func main() {
	_ = godotenv.Load(".env") // .env is optional; real env vars win

	if err := cmd.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
