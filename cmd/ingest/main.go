package main

import (
	"context"
	"flag"
	"log"

	"docuchat-be/internal/bootstrap"
	"docuchat-be/internal/config"
	"docuchat-be/internal/constant"
	"docuchat-be/pkg/database"
)

// Ingests a Docusaurus docs directory from the command line, without going
// through the HTTP endpoint. Safe to re-run: unchanged documents are skipped.
func main() {
	docsDir := flag.String("dir", "./docs", "path to the Docusaurus docs directory")
	flag.Parse()

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	results, err := container.DocumentService.IngestDocusaurusDir(context.Background(), *docsDir)
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	var created, skipped, failed int
	for _, result := range results {
		switch result.Status {
		case constant.IngestStatusSuccess:
			created++
		case constant.IngestStatusAlreadyExists:
			skipped++
		default:
			failed++
			log.Printf("Warn: %s", result.Message)
		}
	}

	log.Printf("✅ Ingestion complete: %d created, %d unchanged, %d failed", created, skipped, failed)
}
