package environment

import (
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
)

// Production defines the prod environment
const Production = "prod"

// Staging defines the staging environment
const Staging = "staging"

// Dev defines the dev environment
const Dev = "dev"

// Environment holds all configuration the booking backend reads from its .env file
type Environment struct {
	Environment   string `mapstructure:"APP_ENV"`
	Cors          string `mapstructure:"CORS"`
	Port          string `mapstructure:"PORT"`
	Database      string `mapstructure:"DATABASE"`
	DatabaseUrl   string `mapstructure:"DATABASE_URL"`
	Redis         string `mapstructure:"REDIS"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	BaseUrl       string `mapstructure:"BASE_URL"`
	Timezone      string `mapstructure:"TIMEZONE"`
}

// Global is the environment the process runs in
var Global Environment

// Initialize reads the .env file into Global
func Initialize() {
	data, err := godotenv.Read(".env")
	if err != nil {
		panic(err)
	}

	err = mapstructure.Decode(data, &Global)
	if err != nil {
		panic(err)
	}
}
