package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/senyabanana/shift-market/internal/db"
	"github.com/senyabanana/shift-market/internal/handlers"
	"github.com/senyabanana/shift-market/internal/repository"
	"github.com/senyabanana/shift-market/internal/router"
	"github.com/senyabanana/shift-market/internal/router/config"
	"github.com/senyabanana/shift-market/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	tenderRepo := repository.NewPostgresTenderRepository(dbPool)
	userRepo := repository.NewPostgresUserRepository(dbPool)
	contactRepo := repository.NewPostgresContactRepository(dbPool)

	tenderService := services.NewTenderService(tenderRepo, userRepo)
	inviteService := services.NewInviteService(tenderRepo, cfg.AllowLateDecisions)
	userService := services.NewUserService(userRepo, dbPool)
	contactService := services.NewContactService(contactRepo, dbPool)

	tenderHandler := handlers.NewTenderHandler(tenderService, logger, 5*time.Second)
	inviteHandler := handlers.NewInviteHandler(inviteService, logger, 5*time.Second)
	userHandler := handlers.NewUserHandler(userService, logger, 5*time.Second)
	contactHandler := handlers.NewContactHandler(contactService, logger, 5*time.Second)

	routes := router.InitRoutes(tenderHandler, inviteHandler, userHandler, contactHandler)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
