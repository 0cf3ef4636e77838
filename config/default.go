package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

func Default() Configs {
	return Configs{
		Env: "local",
		Database: DatabaseConfigs{
			Driver:       "sqlite",
			File:         "reward.db",
			QueryTimeout: Duration{3 * time.Second},
			TxTimeout:    Duration{5 * time.Second},
		},
		ApiServer: APIServerConfigs{
			Port:         "8080",
			NodeID:       1,
			MaxLimit:     50,
			DefaultLimit: 20,
			AllowOrigins: []string{"*"},
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: Duration{24 * time.Hour},
			},
		},
		Log: LogConfigs{Level: "info", Format: "text"},
		Reward: RewardConfigs{
			DailyAmount:           100,
			TicketPrice:           10,
			MaxTicketsPerPurchase: 100,
			FreeSpinEnabled:       true,
			ClaimWindow:           Duration{24 * time.Hour},
		},
		Abuse: AbuseConfigs{
			Policies: map[string]AbusePolicy{
				"post":            {Limit: 5, Window: Duration{time.Minute}, BanOnExceed: true},
				"comment":         {Limit: 5, Window: Duration{time.Minute}, BanOnExceed: true},
				"draw":            {Limit: 10, Window: Duration{time.Minute}, BanOnExceed: true},
				"daily_claim":     {Limit: 5, Window: Duration{time.Minute}, BanOnExceed: true},
				"ticket_purchase": {Limit: 10, Window: Duration{time.Minute}, BanOnExceed: true},
				"claim_prize":     {Limit: 5, Window: Duration{time.Minute}, BanOnExceed: true},
			},
			SweepSchedule: "@every 5m",
		},
	}
}

// Load reads the toml file on top of the default values. Secrets may be
// overridden by environment variables.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	overrideString(&cfg.Database.Password, "DB_PASSWORD")
	overrideString(&cfg.Auth.AccessToken.Secret, "TOKEN_SECRET")
	overrideString(&cfg.Redis.Addr, "REDIS_ADDR")
	overrideString(&cfg.Kafka.Addr, "KAFKA_ADDR")

	if v := os.Getenv("NODE_ID"); v != "" {
		nodeID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Configs{}, fmt.Errorf("invalid NODE_ID %q: %w", v, err)
		}
		cfg.ApiServer.NodeID = nodeID
	}

	return cfg, nil
}

func overrideString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
