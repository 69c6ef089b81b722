package main

import (
	"context"

	config "checkout-hub/configs"
	database "checkout-hub/internal/pkg/db"
	"checkout-hub/internal/pkg/logger"
)

func main() {
	logger.Setup()
	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}
	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup Database
	db, err := setupDB(env)
	if err != nil {
		logger.Error.Println("Error setting up Database", err)
		return
	}

	defer func() {
		if db != nil {
			db.Close()
		}
	}()

	err = db.RunMigrations()
	if err != nil {
		logger.Error.Println("Error running migrations", err)
		return
	}

	logger.Info.Println("Migrations completed successfully")
}

func setupDB(env *config.Config) (*database.Database, error) {
	return database.Setup(&database.Config{
		Host:     env.DBHost,
		Port:     env.DBPort,
		User:     env.DBUser,
		Password: env.DBPass,
		Database: env.DBName,
		SSLMode:  "disable",
		Driver:   "postgres",
	})
}
