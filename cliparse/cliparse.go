package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	BotToken        string
	AdminExternalID string
	ScoreMin        int
}

// ParseFlags validates flags and fills in environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("ranker", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Delivery and policy (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.BotToken, "bot-token", "", "Telegram bot token (prefer env; empty = log-only delivery)")
	fs.StringVar(&cfg.AdminExternalID, "admin", "", "External id promoted to admin at startup")
	fs.IntVar(&cfg.ScoreMin, "score-min", -1, "Lowest accepted score: 0 (0 retracts) or 1")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3320 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.BotToken == "" {
		cfg.BotToken = os.Getenv("BOT_TOKEN")
	}
	if cfg.AdminExternalID == "" {
		cfg.AdminExternalID = os.Getenv("ADMIN_EXTERNAL_ID")
	}

	// Score policy: [0,10] with 0 meaning "retract", or [1,10]
	if cfg.ScoreMin < 0 {
		if minStr := os.Getenv("SCORE_MIN"); minStr != "" {
			min, err := strconv.Atoi(minStr)
			if err != nil {
				return Config{}, errors.New("invalid SCORE_MIN env variable")
			}
			cfg.ScoreMin = min
		} else {
			cfg.ScoreMin = 0 // default
		}
	}
	if cfg.ScoreMin != 0 && cfg.ScoreMin != 1 {
		return Config{}, errors.New("score minimum must be 0 or 1")
	}

	return cfg, nil
}
