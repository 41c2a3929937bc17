package main

import (
	"context"
	"os"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args[1:], DefaultDeps())
	stop()
	os.Exit(code)
}
