package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"userdir/internal/commands"
	"userdir/internal/repositories"
	"userdir/internal/services"
	"userdir/pkg/rabbitmq"
)

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  create <email> <username> <phone> <age>")
	fmt.Println("  update <email> <username> <phone> <age>")
	fmt.Println("  list")
	fmt.Println("  get <email>")
	fmt.Println("  delete <email>")
}

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables with
	// sane defaults. Everything is passed explicitly into constructors;
	// business logic never reads the environment itself.
	viper.SetDefault("USER_DATA_FILE", "userdata.json")
	viper.SetDefault("STORE_BACKEND", "json")
	viper.SetDefault("DATABASE_DSN", "userdata.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.AutomaticEnv()

	logger := initLogger(viper.GetString("LOG_LEVEL"))
	defer logger.Sync()

	args := os.Args
	if len(args) < 2 {
		printUsage()
		return
	}

	// --- Initialize Repository ---
	repo, err := newRepository(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	// --- Initialize Event Publisher (optional) ---
	// Lifecycle events are published only when a broker is configured; a
	// broker outage degrades to a warning instead of blocking the CLI.
	var publisher services.EventPublisher
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: url}, logger)
		if err != nil {
			logger.Warn("rabbitmq unavailable, user events disabled", zap.Error(err))
		} else {
			defer client.Close()
			publisher = client
		}
	}

	// --- Initialize Service and Command Layer ---
	service := services.NewUserService(repo, publisher, logger)
	command := commands.NewUserCommand(service, os.Stdout)

	switch args[1] {
	case "create":
		err = command.Create(args[2:])
	case "update":
		err = command.Update(args[2:])
	case "list":
		err = command.List()
	case "get":
		err = command.Get(args[2:])
	case "delete":
		err = command.Delete(args[2:])
	default:
		printUsage()
		return
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// newRepository selects the store backend from configuration. The JSON file
// store is the default; "memory" keeps records for the process lifetime
// only, "sqlite" and "postgres" use the GORM store.
func newRepository(logger *zap.Logger) (repositories.UserRepository, error) {
	backend := viper.GetString("STORE_BACKEND")
	switch backend {
	case "json":
		return repositories.NewJSONUserRepository(viper.GetString("USER_DATA_FILE")), nil
	case "memory":
		return repositories.NewMockUserRepository(), nil
	case "sqlite", "postgres":
		dsn := viper.GetString("DATABASE_DSN")
		var dialector gorm.Dialector
		if backend == "sqlite" {
			dialector = sqlite.Open(dsn)
		} else {
			dialector = postgres.Open(dsn)
		}
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s database: %w", backend, err)
		}
		if err := db.AutoMigrate(&repositories.UserRecord{}); err != nil {
			return nil, fmt.Errorf("failed to migrate users table: %w", err)
		}
		logger.Debug("using gorm store", zap.String("backend", backend), zap.String("dsn", dsn))
		return repositories.NewGORMUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", backend)
	}
}

// initLogger builds the zap logger from the configured level, falling back
// to info on an unparseable level.
func initLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
