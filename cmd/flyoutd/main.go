// ABOUTME: Entry point for the flyout demo admin server.
// ABOUTME: Wires store, entity sources, registry, and REST handlers with CLI commands.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/2389/flyout"
	"github.com/2389/flyout/internal/admin"
	"github.com/2389/flyout/internal/seed"
	"github.com/2389/flyout/internal/store"
	"github.com/2389/flyout/rest"
	"github.com/2389/flyout/sources"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

var (
	port   string
	dbPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flyoutd",
		Short: "flyoutd - demo admin server for the flyout library",
		Long: `flyoutd runs a small admin server that exercises the flyout library
end to end: it registers a handful of demo flyouts backed by SQLite,
serves their REST endpoints, and renders an index page with live
trigger buttons.

Quick Start:
  flyoutd seed          # Generate demo data
  flyoutd serve         # Start server on port 9000
  flyoutd reset         # Wipe and reseed database`,
	}

	defaultDBPath := getEnv("FLYOUT_DB_PATH", "flyout.db")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the flyout demo server on the specified port.

The server provides:
  • Flyout REST endpoints under /api/flyouts/{id}
  • Demo admin page at http://localhost:PORT/
  • Health check at http://localhost:PORT/healthz

Environment Variables:
  FLYOUT_PORT       Server port (default: 9000)
  FLYOUT_DB_PATH    Database path (default: flyout.db)
  OPENAI_API_KEY    Enable AI-generated seed data`,
		RunE: runServe,
	}
	serveCmd.Flags().StringVarP(&port, "port", "p", getEnv("FLYOUT_PORT", "9000"), "Port to listen on")
	serveCmd.Flags().StringVarP(&dbPath, "db", "d", defaultDBPath, "Database path")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with demo data",
		Long: `Seed the database with demo posts, terms, and users.

AI-Powered Generation:
  Set OPENAI_API_KEY to generate varied demo content.
  Falls back to static fixtures if no API key is provided.

Note: Seed is skipped when the database already has data. Use
'flyoutd reset' to clear and reseed.`,
		RunE: runSeed,
	}
	seedCmd.Flags().StringVarP(&dbPath, "db", "d", defaultDBPath, "Database path")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the database (wipe and reseed)",
		Long: `Delete the database file and create a fresh one with new demo data.

Warning: This permanently deletes all data in the database!`,
		RunE: runReset,
	}
	resetCmd.Flags().StringVarP(&dbPath, "db", "d", defaultDBPath, "Database path")

	rootCmd.AddCommand(serveCmd, seedCmd, resetCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// validateAndCleanDBPath validates and cleans a database path.
func validateAndCleanDBPath(path string) (string, error) {
	cleanPath := strings.TrimSpace(path)
	cleanPath = filepath.Clean(cleanPath)

	if cleanPath == "" || cleanPath == "." || cleanPath == "/" {
		return "", fmt.Errorf("database path cannot be empty, '.', or '/'")
	}

	if strings.Contains(cleanPath, "..") {
		return "", fmt.Errorf("database path cannot contain '..'")
	}

	return cleanPath, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	var err error
	dbPath, err = validateAndCleanDBPath(dbPath)
	if err != nil {
		return err
	}

	srv, closeFn, err := newServer(dbPath)
	if err != nil {
		return err
	}
	defer closeFn()

	addr := ":" + port
	log.Printf("flyoutd listening on %s", addr)
	log.Printf("Database: %s", dbPath)
	return http.ListenAndServe(addr, srv)
}

func newServer(dbPath string) (http.Handler, func(), error) {
	s, err := store.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	reg := flyout.NewRegistry(flyout.WithSources(flyout.Sources{
		Posts: sources.Posts(s.DB()),
		Terms: sources.Terms(s.DB()),
		Users: sources.Users(s.DB()),
	}))
	if err := registerDemoFlyouts(reg, s); err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("failed to register demo flyouts: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		rest.NewHandlers(reg).RegisterRoutes(r)
	})
	admin.NewHandlers(reg).RegisterRoutes(r)

	return r, func() { s.Close() }, nil
}

// registerDemoFlyouts sets up the panels the demo admin page exposes. They
// load and save against the store's entities table, and their relation
// fields search the seeded posts, terms, and users.
func registerDemoFlyouts(reg *flyout.Registry, s *store.Store) error {
	shop := reg.Manager("shop")

	err := shop.Register("edit_product", flyout.Config{
		Title: "Edit Product",
		Width: flyout.WidthLarge,
		Fields: []flyout.Field{
			flyout.TextField{Base: flyout.Base{Name: "name", Label: "Name", Required: true, Sanitize: strings.TrimSpace}},
			flyout.NumberField{Base: flyout.Base{Name: "price", Label: "Price"}, Min: 0, Step: 0.01},
			flyout.TextareaField{Base: flyout.Base{Name: "description", Label: "Description"}, Rows: 4},
			flyout.ToggleField{Base: flyout.Base{Name: "in_stock", Label: "In stock"}},
			flyout.PostField{Base: flyout.Base{Name: "landing_page", Label: "Landing page"}, PostType: "page"},
			flyout.TaxonomyField{Base: flyout.Base{Name: "tags", Label: "Tags"}, Taxonomy: "tag", Multiple: true},
			flyout.UserField{Base: flyout.Base{Name: "owner", Label: "Owner"}, Role: "editor"},
		},
		Tabs: []flyout.Tab{
			{ID: "details", Label: "Details", Fields: []string{"name", "price", "description", "in_stock"}},
			{ID: "relations", Label: "Relations", Fields: []string{"landing_page", "tags", "owner"}},
		},
		Actions: []flyout.Action{
			{Name: "duplicate", Label: "Duplicate"},
			{Name: "archive", Label: "Archive", Confirm: true},
		},
		Load: func(ctx context.Context, id string) (map[string]any, error) {
			return s.LoadEntity("product:" + id)
		},
		Save: func(ctx context.Context, id string, data map[string]any) error {
			return s.SaveEntity("product:"+id, data)
		},
		Delete: func(ctx context.Context, id string) error {
			return s.DeleteEntity("product:" + id)
		},
	})
	if err != nil {
		return err
	}

	err = shop.Register("edit_customer", flyout.Config{
		Title: "Edit Customer",
		Fields: []flyout.Field{
			flyout.TextField{Base: flyout.Base{Name: "name", Label: "Name", Required: true}},
			flyout.TextField{Base: flyout.Base{Name: "email", Label: "Email"}, Kind: flyout.TypeEmail},
			flyout.SelectField{Base: flyout.Base{Name: "status", Label: "Status"}, Options: []flyout.Option{
				{Value: "active", Label: "Active"},
				{Value: "paused", Label: "Paused"},
				{Value: "closed", Label: "Closed"},
			}},
			flyout.DateField{Base: flyout.Base{Name: "since", Label: "Customer since"}},
		},
		Load: func(ctx context.Context, id string) (map[string]any, error) {
			return s.LoadEntity("customer:" + id)
		},
		Save: func(ctx context.Context, id string, data map[string]any) error {
			return s.SaveEntity("customer:"+id, data)
		},
	})
	if err != nil {
		return err
	}

	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	var err error
	dbPath, err = validateAndCleanDBPath(dbPath)
	if err != nil {
		return err
	}

	s, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	return seedData(s)
}

func runReset(cmd *cobra.Command, args []string) error {
	var err error
	dbPath, err = validateAndCleanDBPath(dbPath)
	if err != nil {
		return err
	}

	// Remove existing database - ignore if file doesn't exist
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing database: %w", err)
	}

	s, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	return seedData(s)
}

func seedData(s *store.Store) error {
	n, err := s.CountPosts()
	if err != nil {
		return err
	}
	if n > 0 {
		log.Println("Database already contains seed data. Use 'flyoutd reset' to clear and reseed.")
		return nil
	}

	log.Println("Seeding database with demo data...")

	gen := seed.NewGenerator()
	data, err := gen.Generate(context.Background(), 8, 6, 5)
	if err != nil {
		return fmt.Errorf("generate demo data: %w", err)
	}

	for _, p := range data.Posts {
		if err := s.CreatePost(&store.Post{Title: p.Title, PostType: p.PostType}); err != nil {
			return err
		}
	}
	for _, t := range data.Terms {
		if err := s.CreateTerm(&store.Term{Name: t.Name, Taxonomy: t.Taxonomy}); err != nil {
			return err
		}
	}
	for _, u := range data.Users {
		if err := s.CreateUser(&store.User{DisplayName: u.DisplayName, Role: u.Role}); err != nil {
			return err
		}
	}

	log.Printf("Seeding complete! Created %d posts, %d terms, %d users",
		len(data.Posts), len(data.Terms), len(data.Users))
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
