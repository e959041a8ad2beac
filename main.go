package main

import (
	"os"

	"github.com/grafana/strip-comments/internal/stripcli"
)

func main() {
	if err := stripcli.Command().Execute(); err != nil {
		os.Exit(1)
	}
}
