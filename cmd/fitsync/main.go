package main

import (
	"github.com/arloliu/fitsync/internal/cli"
	"github.com/arloliu/fitsync/internal/logging"
)

func main() {
	logging.ConfigureRuntime()
	cli.Execute()
}
