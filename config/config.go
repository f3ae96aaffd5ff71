package config

import (
	"encoding/json"
	"log"
	"os"

	"github.com/joho/godotenv"
)

const defaultCfgPath = "config/config.json"

type Config struct {
	Env     string  `json:"env"`
	Storage Storage `json:"storage"`
	Server  Server  `json:"server"`
	Log     Log     `json:"log"`
}

type Storage struct {
	Host       string `json:"db_host"`
	Port       string `json:"db_port"`
	DBUser     string
	DBName     string
	DBPassword string
}

type Server struct {
	Addr string `json:"addr"`
}

type Log struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// MustLoad reads .env plus the JSON config file addressed by CONFIG_PATH.
// Database credentials come from the environment only.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		log.Fatal("can`t load config, check configuration or .env files ", err)
	}

	cfgPath, ok := os.LookupEnv("CONFIG_PATH")
	if !ok {
		cfgPath = defaultCfgPath
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		log.Fatalf("error reading config file: %v", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("failed to parse config JSON: %v", err)
	}

	if user, ok := os.LookupEnv("DB_USER"); ok {
		cfg.Storage.DBUser = user
	} else {
		log.Fatal("DB_USER environment variable is not set")
	}

	if password, ok := os.LookupEnv("DB_PASSWORD"); ok {
		cfg.Storage.DBPassword = password
	} else {
		log.Fatal("DB_PASSWORD environment variable is not set")
	}

	if dbName, ok := os.LookupEnv("DB_NAME"); ok {
		cfg.Storage.DBName = dbName
	} else {
		log.Fatal("DB_NAME environment variable is not set")
	}

	return &cfg
}
