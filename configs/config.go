package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI          string        `env:"DREAM_MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName      string        `env:"DREAM_MONGODB_NAME" envDefault:"dream"`
	DataDir           string        `env:"DREAM_DATA_DIR" envDefault:"data"`
	BucketName        string        `env:"DREAM_GRIDFS_BUCKET" envDefault:"fs"`
	UsersCollection   string        `env:"DREAM_USERS_COLLECTION" envDefault:"users"`
	SamplesCollection string        `env:"DREAM_SAMPLES_COLLECTION" envDefault:"samples"`
	ResultsCollection string        `env:"DREAM_RESULTS_COLLECTION" envDefault:"results"`
	LogLevel          string        `env:"DREAM_LOG_LEVEL" envDefault:"info"`
	ConnectTimeout    time.Duration `env:"DREAM_CONNECT_TIMEOUT" envDefault:"10s"`
}

// Load reads the optional dotenv files and then the process environment.
// Variables already set in the environment win over the files.
func Load(dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
