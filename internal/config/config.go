package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort     string
	DBDriver     string // "sqlite" veya "postgres"
	DatabaseDSN  string
	JWTSecret    string // boşsa API kimlik doğrulamasız çalışır
	CORSOrigins  string
	SeedDataPath string // data.js / prices.js dosyalarının bulunduğu klasör
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:     getEnv("HTTP_PORT", "8000"),
		DBDriver:     getEnv("DB_DRIVER", "sqlite"),
		DatabaseDSN:  getEnv("DATABASE_DSN", "./food_cost.db"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		CORSOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		SeedDataPath: getEnv("SEED_DATA_PATH", "."),
	}

	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET tanımlı değil, API kimlik doğrulamasız çalışacak.")
	} else if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.DBDriver == "sqlite" && cfg.DatabaseDSN == "./food_cost.db" {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor (./food_cost.db).")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için kendi domain'ini tanımla.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
