package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"
)

type Config struct {
	Addr          string
	DBUrl         string
	TokenSecret   string
	TokenTTL      time.Duration
	AdminPassword string
	CorsOrigin    string
	Debug         bool
}

func ParseFlags() (cfg Config, err error) {
	var host string
	flag.StringVar(&host, "host", envOr("FORMBOX_HOST", "0.0.0.0"), "listen host name")
	var port uint
	flag.UintVar(&port, "port", envUintOr("FORMBOX_PORT", 3001), "listen port number")
	flag.StringVar(&cfg.DBUrl, "db-url", envOr("FORMBOX_DB_URL", "formbox.sqlite"), "path to SQLite3 DB file")
	flag.StringVar(&cfg.TokenSecret, "token-secret", envOr("FORMBOX_TOKEN_SECRET", ""), "secret key for admin token signing")
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", 24*time.Hour, "admin session lifetime")
	flag.StringVar(&cfg.AdminPassword, "admin-password", envOr("FORMBOX_ADMIN_PASSWORD", ""), "shared admin password")
	flag.StringVar(&cfg.CorsOrigin, "cors-origin", envOr("FORMBOX_CORS_ORIGIN", "http://localhost:5173"), "allowed CORS origin for the frontend")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))

	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
		return
	}
	if cfg.AdminPassword == "" {
		err = errors.New("missing parameter -admin-password")
		return
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envUintOr(name string, fallback uint) uint {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint(n)
		}
	}
	return fallback
}
