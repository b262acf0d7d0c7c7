package main

import (
	"log"

	"foodcost-backend/internal/config"
	"foodcost-backend/internal/database"
	"foodcost-backend/internal/seed"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	if err := seed.Run(database.DB, cfg.SeedDataPath); err != nil {
		log.Fatalf("Seed hatası: %v", err)
	}

	log.Println("Seed tamamlandı.")
}
