package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/rulekit/cmd/rulekit/cmd"
)

func main() {
	os.Exit(cmd.Execute(context.Background()))
}
