package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Database drivers for the sampler's plain database/sql access.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var rootCmd = &cobra.Command{
	Use:   "fabrica",
	Short: "Schema-driven fixture generation toolkit",
	Long: `fabrica derives data-generating factories from a relational schema and
materializes coherent fixture graphs from them.

The CLI covers the database-facing setup steps: inspecting a live
schema and mining representative JSON-column samples for the override
file committed next to the tests.

The database connection comes from DB_URL, or from the discrete
DB_USER, DB_PASSWORD, DB_HOST, DB_PORT and DB_NAME variables. A .env
file in the working directory is honored.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		// Optional; real environment variables win.
		_ = godotenv.Load()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// dbURL assembles the connection url from the environment.
func dbURL() (string, error) {
	if url := os.Getenv("DB_URL"); url != "" {
		return url, nil
	}
	host, port, name := os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_NAME")
	if host == "" || name == "" {
		return "", errors.New("DB_URL (or DB_HOST, DB_PORT and DB_NAME) must be set")
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), host, port, name), nil
}

// openDB opens a plain database/sql handle for the given url.
func openDB(url string) (*sql.DB, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return sql.Open("postgres", url)
	case strings.HasPrefix(url, "mysql://"):
		return sql.Open("mysql", strings.TrimPrefix(url, "mysql://"))
	case strings.HasPrefix(url, "sqlite://"):
		return sql.Open("sqlite", strings.TrimPrefix(url, "sqlite://"))
	default:
		return nil, fmt.Errorf("unsupported database url %q", url)
	}
}
