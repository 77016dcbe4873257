package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/config"
	neo4jstore "github.com/kazumasamatsumoto/angular-module-analyzer/internal/graph/neo4j"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/observability"
	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/output"
	temporalmod "github.com/kazumasamatsumoto/angular-module-analyzer/internal/temporal"

	temporalclient "go.temporal.io/sdk/client"
)

func main() {
	configPath := "configs/analyzer.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	output.SetupLogging(cfg.Log.Level, false)

	ctx := context.Background()
	tp, err := observability.InitTracing(ctx, &observability.TracingConfig{
		ServiceName:  "angular-analyzer-worker",
		Environment:  cfg.Tracing.Environment,
		OTLPEndpoint: cfg.Tracing.Endpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	})
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}
	defer func() { _ = tp.Shutdown(ctx) }()

	deps := &temporalmod.Dependencies{
		Gate:      cfg.Gate,
		Excludes:  cfg.Analyzer.Exclude,
		Overrides: cfg.Analyzer.ResolveOverrides(),
	}

	// The graph store is optional; audits without persistence still run.
	if cfg.Graph.URI != "" {
		repo, err := neo4jstore.NewNeo4j(ctx, cfg.Graph.URI, cfg.Graph.Username, cfg.Graph.Password)
		if err != nil {
			log.Fatalf("graph store: %v", err)
		}
		defer func() { _ = repo.Close(ctx) }()
		deps.Repo = repo
	}

	temporalmod.SetDependencies(deps)

	c, err := temporalclient.Dial(temporalclient.Options{
		HostPort:  cfg.Temporal.Host,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w, err := temporalmod.StartWorker(c, cfg.Temporal.TaskQueue)
	if err != nil {
		log.Fatalf("worker: %v", err)
	}

	fmt.Printf("Worker started on task queue: %s\n", cfg.Temporal.TaskQueue)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	w.Stop()
	fmt.Println("Worker stopped")
}
