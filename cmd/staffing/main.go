// Command staffing manages the staffing database: migrations, seed data,
// demonstration views and integrity audits.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	dbfs "github.com/garnizeh/staffing/db"
	"github.com/garnizeh/staffing/internal/cache"
	"github.com/garnizeh/staffing/internal/config"
	"github.com/garnizeh/staffing/internal/db"
	"github.com/garnizeh/staffing/internal/integrity"
	"github.com/garnizeh/staffing/internal/repository/sqlstore"
	"github.com/garnizeh/staffing/internal/seed"
	"github.com/garnizeh/staffing/internal/staffing"
	"github.com/garnizeh/staffing/pkg/models"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

const usage = `usage: staffing [-config file] <command> [flags]

commands:
  migrate          apply pending migrations and verify the schema
  verify           compare the database tables with the data model
  seed [-file f]   load a YAML dataset (default: embedded sample)
  demo             load the sample when empty and print the views as JSON
  audit [-watch]   run the integrity audit once, or on the configured schedule
`

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.Log.Logger(os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("staffing starting", "version", version, "built", buildTime, "command", flag.Arg(0))
	if err := run(ctx, cfg, logger, flag.Arg(0), flag.Args()[1:]); err != nil {
		logger.Error("command failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

// app holds what every command shares.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	conn   *db.DB
	store  *sqlstore.Store
	redis  *redis.Client
}

func open(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) (*app, error) {
	dialect, err := db.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	conn, err := db.New(ctx, dialect, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if migrate {
		if err := db.Migrate(ctx, conn, dbfs.Migrations); err != nil {
			conn.Close()
			return nil, err
		}
	}
	a := &app{cfg: cfg, logger: logger, conn: conn, store: sqlstore.New(conn, logger)}

	if cfg.Redis.Addr != "" {
		rc, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// The catalog is read from the database when Redis is unreachable.
			logger.Warn("redis unavailable, catalog cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			a.redis = rc
		}
	}
	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", "error", err)
		}
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Warn("close database", "error", err)
	}
}

func (a *app) service() *staffing.Service {
	opts := []staffing.Option{staffing.WithLogger(a.logger)}
	if a.redis != nil {
		opts = append(opts, staffing.WithCatalog(cache.NewCatalog(a.redis, a.store, a.cfg.Redis.TTL, a.logger)))
	}
	return staffing.New(a.store, opts...)
}

// invalidateCatalog drops cached catalog entries after rows were written
// around the service, so seeded skills and roles are visible at once.
func (a *app) invalidateCatalog(ctx context.Context) {
	if a.redis == nil {
		return
	}
	if err := cache.NewCatalog(a.redis, a.store, a.cfg.Redis.TTL, a.logger).Invalidate(ctx); err != nil {
		a.logger.Warn("invalidate catalog cache", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, cmd string, args []string) error {
	switch cmd {
	case "migrate":
		a, err := open(ctx, cfg, logger, true)
		if err != nil {
			return err
		}
		defer a.Close()
		return verify(ctx, a)
	case "verify":
		a, err := open(ctx, cfg, logger, false)
		if err != nil {
			return err
		}
		defer a.Close()
		return verify(ctx, a)
	case "seed":
		return seedCmd(ctx, cfg, logger, args)
	case "demo":
		a, err := open(ctx, cfg, logger, cfg.Database.MigrateOnStart)
		if err != nil {
			return err
		}
		defer a.Close()
		return demo(ctx, a)
	case "audit":
		return auditCmd(ctx, cfg, logger, args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func verify(ctx context.Context, a *app) error {
	missing, unexpected, err := db.VerifyTables(ctx, a.conn, models.Tables())
	if err != nil {
		return err
	}
	if len(unexpected) > 0 {
		a.logger.Warn("unexpected tables", "tables", unexpected)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing tables: %v", missing)
	}
	applied, err := db.AppliedMigrations(ctx, a.conn)
	if err != nil {
		return err
	}
	a.logger.Info("schema verified", "tables", len(models.Tables()), "migrations", len(applied))
	return nil
}

func seedCmd(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	file := fs.String("file", "", "YAML dataset (default: embedded sample)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var ds *seed.Dataset
	var err error
	if *file == "" {
		ds, err = seed.Sample(ctx)
	} else {
		var b []byte
		b, err = os.ReadFile(*file)
		if err == nil {
			ds, err = seed.Parse(ctx, b)
		}
	}
	if err != nil {
		return err
	}

	a, err := open(ctx, cfg, logger, cfg.Database.MigrateOnStart)
	if err != nil {
		return err
	}
	defer a.Close()

	sum, err := seed.NewLoader(a.store, logger, nil).Load(ctx, ds)
	if err != nil {
		return err
	}
	a.invalidateCatalog(ctx)
	return printJSON(sum)
}

type demoOutput struct {
	Clients     []*staffing.ClientPortfolio   `json:"clients"`
	Individuals []*staffing.IndividualProfile `json:"individuals"`
	Projects    []*staffing.ProjectStaffing   `json:"projects"`
}

func demo(ctx context.Context, a *app) error {
	svc := a.service()

	clients, err := a.store.Clients(ctx)
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		ds, err := seed.Sample(ctx)
		if err != nil {
			return err
		}
		if _, err := seed.NewLoader(a.store, a.logger, nil).Load(ctx, ds); err != nil {
			return err
		}
		a.invalidateCatalog(ctx)
		if clients, err = a.store.Clients(ctx); err != nil {
			return err
		}
	}

	out := demoOutput{}
	for _, c := range clients {
		p, err := svc.ClientPortfolio(ctx, c.ID)
		if err != nil {
			return err
		}
		out.Clients = append(out.Clients, p)
	}

	people, err := a.store.Individuals(ctx)
	if err != nil {
		return err
	}
	for _, i := range people {
		p, err := svc.IndividualProfile(ctx, i.ID)
		if err != nil {
			return err
		}
		out.Individuals = append(out.Individuals, p)
	}

	projects, err := a.store.Projects(ctx)
	if err != nil {
		return err
	}
	for _, p := range projects {
		v, err := svc.ProjectStaffing(ctx, p.ID)
		if err != nil {
			return err
		}
		out.Projects = append(out.Projects, v)
	}
	return printJSON(out)
}

func auditCmd(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("audit", flag.ContinueOnError)
	watch := fs.Bool("watch", false, "keep running on the configured schedule")
	schedule := fs.String("schedule", cfg.Audit.Schedule, "cron schedule used with -watch")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := open(ctx, cfg, logger, cfg.Database.MigrateOnStart)
	if err != nil {
		return err
	}
	defer a.Close()

	auditor := integrity.NewAuditor(a.store, logger, nil)
	if !*watch {
		rep, err := auditor.Run(ctx)
		if err != nil {
			return err
		}
		if err := printJSON(rep); err != nil {
			return err
		}
		if !rep.OK() {
			return errors.New("integrity audit reported findings")
		}
		return nil
	}

	s, err := integrity.NewScheduler(auditor, *schedule, logger)
	if err != nil {
		return err
	}
	s.Start(ctx)
	<-ctx.Done()
	logger.Info("shutting down audit scheduler")

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Stop(stopCtx)
}

// stdout receives command output.
var stdout io.Writer = os.Stdout

func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
