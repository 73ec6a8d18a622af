package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"typepet/internal/config"
	"typepet/internal/storage"

	"github.com/joho/godotenv"
)

// backupFile is the on-disk export format: every document of every collection,
// still as raw JSON
type backupFile struct {
	ExportedAt  time.Time                             `json:"exported_at"`
	Collections map[string]map[string]json.RawMessage `json:"collections"`
}

var backupCollections = []string{
	storage.CollectionPetStates,
	storage.CollectionAchievements,
}

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	store, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(store, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(store, *importInput, *importClear)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(store storage.Store, outputPath string) {
	// Generate default filename if not provided
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	ctx := context.Background()
	backup := backupFile{
		ExportedAt:  time.Now(),
		Collections: make(map[string]map[string]json.RawMessage),
	}

	total := 0
	for _, collection := range backupCollections {
		documents, err := store.GetAll(ctx, collection)
		if err != nil {
			log.Fatalf("Failed to read collection %s: %v", collection, err)
		}
		backup.Collections[collection] = make(map[string]json.RawMessage, len(documents))
		for key, value := range documents {
			backup.Collections[collection][key] = json.RawMessage(value)
		}
		total += len(documents)
	}

	log.Printf("Exporting %d documents to: %s", total, outputPath)
	raw, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode backup: %v", err)
	}
	if err := os.WriteFile(outputPath, raw, 0644); err != nil {
		log.Fatalf("Failed to write backup file: %v", err)
	}

	fileInfo, _ := os.Stat(outputPath)
	log.Printf("Export complete! File size: %.2f MB", float64(fileInfo.Size())/1024/1024)
}

func handleImport(store storage.Store, inputPath string, clearData bool) {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}

	var backup backupFile
	if err := json.Unmarshal(raw, &backup); err != nil {
		log.Fatalf("Failed to parse backup file: %v", err)
	}

	ctx := context.Background()
	if clearData {
		fmt.Print("WARNING: This will delete all existing data. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Println("Import cancelled")
			return
		}

		log.Println("Clearing existing data...")
		for _, collection := range backupCollections {
			if err := store.Clear(ctx, collection); err != nil {
				log.Fatalf("Failed to clear collection %s: %v", collection, err)
			}
		}
	}

	log.Printf("Importing from: %s (exported %s)", inputPath, backup.ExportedAt.Format(time.RFC3339))
	total := 0
	for collection, documents := range backup.Collections {
		for key, value := range documents {
			if err := store.Put(ctx, collection, key, value); err != nil {
				log.Fatalf("Failed to import %s/%s: %v", collection, key, err)
			}
			total++
		}
	}

	log.Printf("Import complete! %d documents restored", total)
}

func printUsage() {
	fmt.Println("Usage: backup <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  export    Export all pet and achievement data to a JSON file")
	fmt.Println("  import    Import data from a JSON backup file")
	fmt.Println()
	fmt.Println("Run 'backup <command> -h' for flags")
}
