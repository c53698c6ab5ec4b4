package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kong/tabulator/internal/build"
	"github.com/kong/tabulator/internal/cmd/root"
	"github.com/kong/tabulator/internal/iostreams"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=..."
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func registerSignalHandler() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func main() {
	ctx, stop := registerSignalHandler()
	code := root.Execute(ctx, iostreams.GetOSIOStreams(), &build.Info{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	stop()
	os.Exit(code)
}
