package main

import (
	"os"

	"github.com/kjkrol/gorast/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], os.Stderr))
}
