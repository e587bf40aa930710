package main

import (
	"flag"
	"os"

	"opftube/pkg/config"
	"opftube/pkg/database"
	"opftube/pkg/logger"
)

func main() {
	var (
		demo      = flag.Bool("demo", false, "also create a demo user, channel and videos")
		clearData = flag.Bool("clear", false, "delete all videos and comments before seeding")
	)
	flag.Parse()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Error("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	if err := run(db, log, options{demo: *demo, clear: *clearData}); err != nil {
		log.Error("Failed to seed database: %v", err)
		os.Exit(1)
	}

	log.Info("Database seeded successfully!")
}
