package main

import (
	"os"

	"github.com/meridiantrade/catalog-services/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	if err := newRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}
