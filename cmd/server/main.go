package main

import (
	"os"

	"github.com/dmitrijs2005/notekeeper/internal/server"
)

func main() {
	os.Exit(server.Main())
}
