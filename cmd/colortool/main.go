package main

import (
	"os"

	"github.com/joho/godotenv"

	"motoclub-theme/internal/cli"
)

func main() {
	_ = godotenv.Load()
	os.Exit(cli.Execute())
}
