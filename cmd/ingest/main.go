package main

import (
	"context"
	"flag"
	"log"

	"medassist-be/internal/bootstrap"
	"medassist-be/internal/config"
	"medassist-be/internal/pkg/logger"
	"medassist-be/internal/repository/unitofwork"
	"medassist-be/internal/service"
	"medassist-be/pkg/database"
)

func main() {
	file := flag.String("file", "", "PDF document to ingest")
	source := flag.String("source", "", "source label stored with each passage (defaults to the file name)")
	flag.Parse()

	if *file == "" {
		log.Fatal("Error: -file is required")
	}

	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	if err := bootstrap.RequirePersistentVectorStore(cfg); err != nil {
		log.Fatalf("Error: %v", err)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	provider, err := bootstrap.NewEmbeddingProvider(cfg)
	if err != nil {
		log.Fatalf("Error: embedding provider: %v", err)
	}
	index, err := bootstrap.NewPersistentVectorIndex(cfg, unitofwork.NewRepositoryFactory(db))
	if err != nil {
		log.Fatalf("Error: vector index: %v", err)
	}

	ingestor := bootstrap.NewIngestor(cfg, provider, index, sysLogger)
	svc := service.NewIngestService(ingestor, index, nil, cfg.Ingest.UploadDir, nil, sysLogger)

	res, err := svc.IngestFile(context.Background(), *file, *source)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	log.Printf("Ingested %s: %d pages, %d chunks, %d passages upserted", res.Source, res.Pages, res.Chunks, res.Upserted)
}
