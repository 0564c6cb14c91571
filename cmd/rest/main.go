package main

import (
	"context"
	"log"

	"algodraft-be/internal/bootstrap"
	"algodraft-be/internal/config"
	"algodraft-be/internal/server"
	"algodraft-be/internal/tracer"

	"github.com/fatih/color"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	color.Cyan("AlgoDraft backend: research-grounded code assistant")

	// 3. Initialize Server
	srv := server.New(cfg, container)

	// 4. Run Server
	log.Fatal(srv.Run())
}
