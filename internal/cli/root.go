package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/labunify/internal/config"
	"github.com/terraincognita07/labunify/internal/db"
	"github.com/terraincognita07/labunify/internal/i18n"
	"github.com/terraincognita07/labunify/internal/logging"
	"github.com/terraincognita07/labunify/internal/services"
	"go.uber.org/zap"
)

func Execute() {
	cmd := NewRootCommand(os.Getenv)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the labunify command tree. getenv supplies the
// environment used for configuration.
func NewRootCommand(getenv func(string) string) *cobra.Command {
	env := &commandEnv{getenv: getenv}

	cmd := &cobra.Command{
		Use:          "labunify",
		Short:        "Lab analysis name unification and unit conversion",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&env.configPath, "config", "", "path to a YAML config file (default $"+config.EnvConfigPath+")")

	cmd.AddCommand(
		serveCmd(env),
		resolveCmd(env),
		convertCmd(env),
		toStandardCmd(env),
		synonymCmd(env),
		unitCmd(env),
		conversionCmd(env),
		importCmd(env),
		exportCmd(env),
	)
	return cmd
}

type commandEnv struct {
	getenv     func(string) string
	configPath string
}

// session holds the open database and the services of one command
// invocation.
type session struct {
	config      config.Config
	logger      *zap.Logger
	store       *db.TermStore
	cache       services.GraphCache
	i18n        *i18n.Manager
	unification *services.UnificationService
	conversions *services.ConversionService
	admin       *services.TermAdminService
	transfer    *services.TransferService
	sqlDB       *sql.DB
}

func (env *commandEnv) open() (*session, error) {
	getenv := env.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	path := env.configPath
	if path == "" {
		path = getenv(config.EnvConfigPath)
	}

	cfg, err := config.Load(path, getenv)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	database, err := db.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	var cache services.GraphCache
	if cfg.GraphCacheSize > 0 {
		lru, err := services.NewLRUGraphCache(cfg.GraphCacheSize)
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("graph cache init failed: %w", err)
		}
		cache = lru
	}

	store := db.NewTermStore(database)
	return &session{
		config:      cfg,
		logger:      logger,
		store:       store,
		cache:       cache,
		i18n:        i18nManager,
		unification: services.NewUnificationService(store),
		conversions: services.NewConversionService(store, cache, logger),
		admin:       services.NewTermAdminService(store, cache),
		transfer:    services.NewTransferService(store),
		sqlDB:       sqlDB,
	}, nil
}

func (s *session) close() error {
	_ = s.logger.Sync()
	return s.sqlDB.Close()
}

// withSession opens a session for the duration of run.
func (env *commandEnv) withSession(run func(s *session) error) error {
	s, err := env.open()
	if err != nil {
		return err
	}
	return errors.Join(run(s), s.close())
}
