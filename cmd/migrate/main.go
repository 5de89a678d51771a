// Command migrate manages the shop database schema.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/shopizer/backend/internal/infrastructure/config"
	"github.com/shopizer/backend/internal/infrastructure/logger"
	"github.com/shopizer/backend/internal/infrastructure/migration"
	"github.com/shopizer/backend/migrations"
)

// migrator is the subset of migration.Migrator the commands drive
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	GoTo(version uint) error
	Version() (uint, bool, error)
	Force(version int) error
	Drop() error
}

type command struct {
	name    string
	args    string
	summary string
	db      func(m migrator, args []string, log *zap.Logger) error
	files   func(dir string, args []string, log *zap.Logger) error
}

var commands = []command{
	{name: "up", summary: "Apply all pending migrations",
		db: func(m migrator, _ []string, _ *zap.Logger) error { return m.Up() }},
	{name: "down", summary: "Roll back all migrations",
		db: func(m migrator, _ []string, _ *zap.Logger) error { return m.Down() }},
	{name: "step", args: "<n>", summary: "Apply n migrations, negative n rolls back", db: step},
	{name: "goto", args: "<version>", summary: "Migrate up or down to version", db: gotoVersion},
	{name: "version", summary: "Show the applied version", db: showVersion},
	{name: "force", args: "<version>", summary: "Mark version as applied and clean", db: force},
	{name: "drop", args: "-confirm", summary: "Drop every database object", db: drop},
	{name: "create", args: "<name> [desc]", summary: "Write an empty up/down pair to -path", files: create},
	{name: "list", summary: "List migrations in -path or the binary", files: list},
}

var errUnknownCommand = errors.New("unknown command")

func lookup(name string) (command, error) {
	for _, c := range commands {
		if c.name == name {
			return c, nil
		}
	}
	return command{}, fmt.Errorf("%w %q", errUnknownCommand, name)
}

// run executes a database command. args excludes the command itself.
func run(m migrator, name string, args []string, log *zap.Logger) error {
	c, err := lookup(name)
	if err != nil {
		return err
	}
	if c.db == nil {
		return fmt.Errorf("%s does not use the database", name)
	}
	return c.db(m, args, log)
}

func step(m migrator, args []string, _ *zap.Logger) error {
	n, err := intArg(args, "step count")
	if err != nil {
		return err
	}
	return m.Steps(n)
}

func gotoVersion(m migrator, args []string, _ *zap.Logger) error {
	if len(args) == 0 {
		return errors.New("version required: migrate goto <version>")
	}
	v, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid version %q", args[0])
	}
	return m.GoTo(uint(v))
}

func showVersion(m migrator, _ []string, log *zap.Logger) error {
	v, dirty, err := m.Version()
	switch {
	case err != nil:
		return err
	case v == 0:
		log.Info("No migrations applied")
	default:
		log.Info("Current migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	}
	return nil
}

func force(m migrator, args []string, log *zap.Logger) error {
	v, err := intArg(args, "version")
	if err != nil {
		return err
	}
	log.Warn("Forcing migration version", zap.Int("version", v))
	return m.Force(v)
}

func drop(m migrator, args []string, _ *zap.Logger) error {
	for _, a := range args {
		if a == "-confirm" || a == "--confirm" {
			return m.Drop()
		}
	}
	return errors.New("drop removes every database object, rerun as 'migrate drop -confirm'")
}

func create(dir string, args []string, log *zap.Logger) error {
	if dir == "" {
		dir = "migrations"
	}
	if len(args) == 0 {
		return errors.New("migration name required: migrate create <name> [description]")
	}
	mf, err := migration.CreateMigration(dir, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up", mf.UpPath),
		zap.String("down", mf.DownPath))
	return nil
}

func list(dir string, _ []string, log *zap.Logger) error {
	var fsys fs.FS = migrations.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	names, err := migration.ListMigrations(fsys)
	if err != nil {
		return err
	}
	log.Info("Available migrations", zap.Int("count", len(names)))
	for _, n := range names {
		fmt.Println("  -", n)
	}
	return nil
}

func intArg(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s required", what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, args[0])
	}
	return n, nil
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Usage: migrate [flags] <command> [arguments]")
	fmt.Fprintln(out, "\nCommands:")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-22s %s\n", strings.TrimSpace(c.name+" "+c.args), c.summary)
	}
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
	fmt.Fprintln(out, "\nThe database is read from config.toml and SHOP_DATABASE_* variables.")
}

func main() {
	dir := flag.String("path", "", "migrations directory (default: database.migrations_path, then the embedded files)")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	name, args := flag.Arg(0), flag.Args()[1:]

	log, err := logger.New(&logger.Config{Level: *level, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	c, err := lookup(name)
	if err != nil {
		flag.Usage()
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if *dir == "" {
		*dir = cfg.Database.MigrationsPath
	}
	if *dir != "" {
		if *dir, err = filepath.Abs(*dir); err != nil {
			log.Fatal("Invalid migrations path", zap.Error(err))
		}
	}
	log.Debug("Running migrate", zap.String("command", name), zap.String("path", *dir))

	if c.files != nil {
		if err := c.files(*dir, args, log); err != nil {
			log.Fatal("Migration command failed", zap.String("command", name), zap.Error(err))
		}
		return
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to reach database", zap.Error(err))
	}
	source := migration.EmbeddedSource()
	if *dir != "" {
		source = migration.DirSource(*dir)
	}
	m, err := migration.New(db, source, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() { _ = m.Close() }()

	if err := c.db(m, args, log); err != nil {
		log.Fatal("Migration command failed", zap.String("command", name), zap.Error(err))
	}
}
