package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"ecoleta/internal/domain/item"
	"ecoleta/internal/domain/point"
	"ecoleta/internal/infrastructure/postgres"
	"ecoleta/internal/shared/config"
	"ecoleta/internal/shared/imageurl"
)

const usage = `Ecoleta Admin CLI - Management commands for the Ecoleta API

Usage:
  admin <command> [options]

Commands:
  migrate   Apply pending database migrations (schema and item catalog)
  items     List the item catalog with public image URLs
  point     Show a collection point and the items it accepts

Examples:
  # Apply migrations before the first deploy
  admin migrate

  # Apply migrations with a longer timeout
  admin migrate --timeout=5m

  # Inspect the catalog as clients see it
  admin items

  # Inspect a registered point
  admin point --id=42
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage + "\n")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		runMigrate(os.Args[2:])
	case "items":
		runItems(os.Args[2:])
	case "point":
		runPoint(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage + "\n")
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage + "\n")
		os.Exit(1)
	}
}

func runMigrate(args []string) {
	flags := flag.NewFlagSet("migrate", flag.ExitOnError)
	timeoutStr := flags.String("timeout", "1m", "Timeout for the operation (e.g., 30s, 5m)")

	flags.Usage = func() {
		fmt.Println("Usage: admin migrate [options]")
		fmt.Println("\nOptions:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, cancel := timeoutContext(*timeoutStr)
	defer cancel()

	_, db := connect()
	defer db.Close()

	applied, err := db.Migrate(ctx)
	if err != nil {
		fatal("migration failed", err)
	}

	if len(applied) == 0 {
		fmt.Println("Database is up to date")
		return
	}
	for _, version := range applied {
		fmt.Printf("Applied %s\n", version)
	}
}

func runItems(args []string) {
	flags := flag.NewFlagSet("items", flag.ExitOnError)
	timeoutStr := flags.String("timeout", "30s", "Timeout for the operation")

	if err := flags.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, cancel := timeoutContext(*timeoutStr)
	defer cancel()

	cfg, db := connect()
	defer db.Close()

	svc := item.NewService(postgres.NewItemRepository(db), imageBuilder(cfg))
	items, err := svc.ListItems(ctx)
	if err != nil {
		fatal("failed to list items", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tIMAGE URL")
	for _, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\n", it.ID, it.Title, it.ImageURL)
	}
	w.Flush()
}

func runPoint(args []string) {
	flags := flag.NewFlagSet("point", flag.ExitOnError)
	idStr := flags.String("id", "", "Point ID to show")
	timeoutStr := flags.String("timeout", "30s", "Timeout for the operation")

	flags.Usage = func() {
		fmt.Println("Usage: admin point --id=<id>")
		fmt.Println("\nOptions:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		os.Exit(1)
	}

	id, err := point.ParseID(*idStr)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		flags.Usage()
		os.Exit(1)
	}

	ctx, cancel := timeoutContext(*timeoutStr)
	defer cancel()

	cfg, db := connect()
	defer db.Close()

	// Read-only; the image store is never touched.
	svc := point.NewService(postgres.NewPointRepository(db), nil, imageBuilder(cfg))
	detail, err := svc.GetPoint(ctx, id)
	if err != nil {
		fatal("failed to load point", err)
	}

	p := detail.Point
	fmt.Printf("#%d %s\n", p.ID, p.Name)
	fmt.Printf("  Email:     %s\n", p.Email)
	fmt.Printf("  WhatsApp:  %s\n", p.Whatsapp)
	fmt.Printf("  Location:  %s/%s (%.6f, %.6f)\n", p.City, p.UF, p.Latitude, p.Longitude)
	fmt.Printf("  Image:     %s\n", p.ImageURL)
	fmt.Println("  Items:")
	for _, title := range detail.Items {
		fmt.Printf("    - %s\n", title)
	}
}

func connect() (*config.Config, *postgres.DB) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fatal("failed to read .env", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("failed to load config", err)
	}
	slog.SetDefault(cfg.NewLogger())

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		fatal("failed to connect to database", err)
	}
	slog.Debug("connected to database", "host", cfg.Database.Host)

	return cfg, db
}

func imageBuilder(cfg *config.Config) *imageurl.Builder {
	b, err := imageurl.NewBuilder(cfg.Uploads.BaseURL)
	if err != nil {
		fatal("invalid upload base URL", err)
	}
	return b
}

func timeoutContext(raw string) (context.Context, context.CancelFunc) {
	timeout, err := time.ParseDuration(raw)
	if err != nil {
		fatal("invalid timeout format", err)
	}
	return context.WithTimeout(context.Background(), timeout)
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
