package main

import (
	"context"                          // Context for service calls
	"fmt"                              // Error output
	"os"                               // Exit codes
	"time_manager/internal/config"     // Custom import path (Config)
	"time_manager/internal/db"         // Custom import path (Database)
	"time_manager/internal/domain"     // Roles
	"time_manager/internal/repository" // Repositories
	"time_manager/internal/service"    // Business operations

	"github.com/alecthomas/kong" // Command line parsing
	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// UpCmd migrates the schema
type UpCmd struct{}

func (UpCmd) Run(gdb *gorm.DB) error {
	return db.Migrate(gdb)
}

// CreateAdminCmd migrates the schema and creates an administrator account
type CreateAdminCmd struct {
	Name     string `help:"Display name." required:""`
	Username string `help:"Login name." required:""`
	Password string `help:"Password." required:"" env:"ADMIN_PASSWORD"`
}

func (c CreateAdminCmd) Run(gdb *gorm.DB) error {
	if err := db.Migrate(gdb); err != nil {
		return err
	}
	users := service.NewUsers(repository.NewSet(gdb))
	id, err := users.Register(context.Background(), service.UserInput{
		Name:     c.Name,
		Username: c.Username,
		Password: c.Password,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return err
	}
	logrus.WithField("user_id", id).Info("Administrator created.")
	return nil
}

var CLI struct {
	Up          UpCmd          `cmd:"" help:"Create or update the database schema." default:"1"`
	CreateAdmin CreateAdminCmd `cmd:"" help:"Create an administrator account."`
}

// Main entry point for migration
func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("migrate"),
		kong.Description("Schema migration and account bootstrap for time_manager"),
		kong.UsageOnError(),
	)

	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Open(cfg) // Connect to the configured database
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	if err := ctx.Run(gdb); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
