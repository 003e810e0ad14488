package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

// OverflowPolicy decides what happens to a contribution larger than the
// loan's remaining capacity.
type OverflowPolicy string

const (
	// OverflowClamp accepts the remaining amount and reports the
	// accepted value back to the caller.
	OverflowClamp OverflowPolicy = "clamp"
	// OverflowReject refuses the whole contribution.
	OverflowReject OverflowPolicy = "reject"
)

type Config struct {
	Env     string
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	ScoringBaseURL     string
	ScoringTimeoutSecs int

	Overflow         OverflowPolicy
	InstallmentCount int
	ReputationDecay  float64
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	c := &Config{
		Env:     getenv("APP_ENV", "development"),
		AppPort: getenv("APP_PORT", "8080"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "agrifund"),
		MySQLUser: getenv("MYSQL_USER", "agrifund"),
		MySQLPass: getenv("MYSQL_PASS", "agrifund"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,

		ScoringBaseURL:     getenv("SCORING_BASE_URL", "http://scoring:8090"),
		ScoringTimeoutSecs: 5,

		Overflow:         OverflowPolicy(getenv("FUNDING_OVERFLOW_POLICY", string(OverflowClamp))),
		InstallmentCount: 12,
		ReputationDecay:  0.85,
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	if v := os.Getenv("SCORING_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ScoringTimeoutSecs = n
		}
	}
	if v := os.Getenv("INSTALLMENT_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.InstallmentCount = n
		}
	}
	if v := os.Getenv("REPUTATION_DECAY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			c.ReputationDecay = f
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.Overflow != OverflowClamp && c.Overflow != OverflowReject {
		return fmt.Errorf("invalid FUNDING_OVERFLOW_POLICY %q (want clamp or reject)", c.Overflow)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
