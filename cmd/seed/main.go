package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"bookstore-ledger/config"
	"bookstore-ledger/ledger"
	"bookstore-ledger/store"
)

func main() {
	fixture := flag.String("fixture", "seed.yaml", "YAML file with employees, books and sales")
	configFile := flag.String("config", "bookstore.yaml", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	snap, err := readFixture(*fixture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading fixture: %v\n", err)
		os.Exit(1)
	}

	// Clean up any existing store files
	fmt.Println("Cleaning up existing store files...")
	for _, file := range store.Files(cfg.StoreKind, cfg.StorePath) {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Warning: Could not remove %s: %v\n", file, err)
		}
	}

	st, err := store.Open(cfg.StoreKind, cfg.StorePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating store: %v\n", err)
		os.Exit(1)
	}
	manager := ledger.NewManager(st, logger)
	defer manager.Close()

	fmt.Printf("Seeding %s store at %s from %s...\n", cfg.StoreKind, cfg.StorePath, *fixture)
	if err := manager.Restore(snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying fixture: %v\n", err)
		os.Exit(1)
	}
	if err := manager.Save(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nSeed complete!\n")
	fmt.Printf("Employees: %d\n", manager.Employees.Len())
	fmt.Printf("Books:     %d\n", manager.Catalog.Len())
	fmt.Printf("Sales:     %d\n", manager.Sales.Len())

	if manager.Catalog.Len() > 0 {
		fmt.Println("\nCatalog:")
		fmt.Printf("%-40s %-30s %8s\n", "Title", "Author", "Price")
		fmt.Println(strings.Repeat("-", 80))
		for _, book := range manager.Catalog.List() {
			fmt.Printf("%-40s %-30s %8s\n", truncateString(book.Title, 40), truncateString(book.Author, 30), ledger.FormatPrice(book.SalePrice))
		}
	}
}

func readFixture(path string) (ledger.Snapshot, error) {
	var snap ledger.Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, err
	}
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("parse %s: %w", path, err)
	}
	return snap, nil
}

// truncateString shortens s to at most maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
