package config

import (
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer APIServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Log       LogConfigs
	Reward    RewardConfigs
	Abuse     AbuseConfigs
}

type DatabaseConfigs struct {
	// Driver is either "mysql" or "sqlite".
	Driver   string
	Host     string
	Port     string
	Database string
	User     string
	Password string

	// File is only used by the sqlite driver.
	File string

	QueryTimeout Duration
	TxTimeout    Duration
}

func (d *DatabaseConfigs) ConnectionString() string {
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(d.Host, d.Port)
	cfg.DBName = d.Database
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.MultiStatements = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}

	return cfg.FormatDSN()
}

type APIServerConfigs struct {
	Host string
	Port string

	// NodeID seeds the snowflake generator of ledger entry ids. Every running
	// instance must use a distinct value in [0, 1023].
	NodeID int64

	MaxLimit     int
	DefaultLimit int
	AllowOrigins []string
}

type AuthConfigs struct {
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Secret     string
	Expiration Duration
}

type RedisConfigs struct {
	Enable bool
	Addr   string
}

type KafkaConfigs struct {
	Enable   bool
	Addr     string
	ClientID string
}

type LogConfigs struct {
	Level  string
	Format string
}

type RewardConfigs struct {
	DailyAmount           int64
	TicketPrice           int64
	MaxTicketsPerPurchase int64
	FreeSpinEnabled       bool

	// ClaimWindow is the cooldown of both the daily coin claim and the daily
	// free spin.
	ClaimWindow Duration
}

type AbuseConfigs struct {
	Policies       map[string]AbusePolicy
	BannedKeywords []string

	// SweepSchedule is a cron spec for evicting idle in-memory counters.
	SweepSchedule string
}

type AbusePolicy struct {
	Limit       int
	Window      Duration
	BanOnExceed bool
}

// Duration wraps time.Duration so it can be written as "10s" in toml files.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
