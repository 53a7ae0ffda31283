package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/lotfi029/FreelancerAssignment/internal/server"
	"github.com/lotfi029/FreelancerAssignment/internal/server/config"
)

func main() {
	ctx := context.Background()

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("failed to load the env file: %v", err)
			return
		}
	}

	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
