package main

import (
	"os"

	"github.com/alejandroruanova/text-cleaner-service/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
