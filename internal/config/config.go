package config

import (
	"github.com/caarlos0/env/v11"

	"log"
)

type Config struct {
	Redis  Redis
	Engine Engine
}

type Redis struct {
	Addr     string `env:"Redis_Address"`
	Password string `env:"Redis_Password"`
	DB       int    `env:"Redis_DB"`
}

type Engine struct {
	Tenants      []string `env:"Engine_Tenants" envSeparator:","`
	TickInterval string   `env:"Engine_TickInterval" envDefault:"1m"`
}

func Load() *Config {
	var c Config
	if err := env.Parse(&c); err != nil {
		log.Fatal(err)
	}

	return &c
}
