package main

import (
	"log"
	"os"

	"github.com/envcfg/envcfg"
)

// DatabaseConfig reads DATABASE_CONFIG_HOST and DATABASE_CONFIG_PORT
// when used on its own. Inside ServiceConfig the primary instance keeps
// that prefix while the replica is renamed with an env-prefix tag.
type DatabaseConfig struct {
	Host string
	Port int `env-default:"5432"`
}

// RedisConfig replaces the derived prefix with a custom one,
// so its fields read REDIS_HOST and REDIS_DB.
type RedisConfig struct {
	Host string
	DB   int `env-default:"0"`
}

func (RedisConfig) EnvPrefix() string { return "REDIS" }

// ServiceConfig reads its own fields under SERVICE_CONFIG_.
type ServiceConfig struct {
	Name    string `env-default:"greeter"`
	Primary DatabaseConfig
	Replica DatabaseConfig `env-prefix:"REPLICA"`
	Cache   RedisConfig
}

func main() {
	setupEnv()

	var cfg ServiceConfig
	if err := envcfg.ReadEnv(&cfg); err != nil {
		log.Fatal(err)
	}

	log.Printf("service %s", cfg.Name)
	log.Printf("primary database %s:%d", cfg.Primary.Host, cfg.Primary.Port)
	log.Printf("replica database %s:%d", cfg.Replica.Host, cfg.Replica.Port)
	log.Printf("cache %s/%d", cfg.Cache.Host, cfg.Cache.DB)
}

func setupEnv() {
	os.Setenv("DATABASE_CONFIG_HOST", "db.local")
	os.Setenv("REPLICA_HOST", "replica.local")
	os.Setenv("REPLICA_PORT", "5433")
	os.Setenv("REDIS_HOST", "cache.local")
}
