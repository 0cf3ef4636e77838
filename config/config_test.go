package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Default(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, int64(100), cfg.Reward.DailyAmount)
	require.Equal(t, 24*time.Hour, cfg.Reward.ClaimWindow.Duration)
	require.Equal(t, 10, cfg.Abuse.Policies["draw"].Limit)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
Env = "prod"

[Database]
Driver = "mysql"
Host = "db"
Port = "3306"
Database = "reward"
User = "reward"
TxTimeout = "7s"

[Reward]
TicketPrice = 25
FreeSpinEnabled = false

[Abuse]
BannedKeywords = ["scam"]

[Abuse.Policies.draw]
Limit = 3
Window = "30s"
BanOnExceed = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("DB_PASSWORD", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "mysql", cfg.Database.Driver)
	require.Equal(t, "s3cret", cfg.Database.Password)
	require.Equal(t, 7*time.Second, cfg.Database.TxTimeout.Duration)
	require.Equal(t, int64(25), cfg.Reward.TicketPrice)
	require.False(t, cfg.Reward.FreeSpinEnabled)
	require.Equal(t, []string{"scam"}, cfg.Abuse.BannedKeywords)
	require.Equal(t, AbusePolicy{Limit: 3, Window: Duration{30 * time.Second}}, cfg.Abuse.Policies["draw"])

	// Values absent from the file keep their defaults.
	require.Equal(t, int64(100), cfg.Reward.DailyAmount)
	require.Equal(t, 5, cfg.Abuse.Policies["post"].Limit)

	dsn := cfg.Database.ConnectionString()
	require.True(t, strings.HasPrefix(dsn, "reward:s3cret@tcp(db:3306)/reward?"), dsn)
	require.Contains(t, dsn, "parseTime=true")
	require.Contains(t, dsn, "multiStatements=true")
	require.Contains(t, dsn, "charset=utf8mb4")
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[Reward]\nClaimWindow = \"one day\"\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_NodeID(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, int64(1), cfg.ApiServer.NodeID)

	t.Setenv("NODE_ID", "7")
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, int64(7), cfg.ApiServer.NodeID)

	t.Setenv("NODE_ID", "seven")
	_, err = Load("")
	require.Error(t, err)
}
