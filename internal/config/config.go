package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr           string
		Port           string
		AllowedOrigins []string
		// TrustedProxies lists the proxy IPs or CIDRs whose forwarding
		// headers are believed. Empty means the socket peer is the client.
		TrustedProxies []string
		BodyLimit      int64
	}
	Database struct {
		Path string
		Seed bool
	}
	Auth struct {
		JWTSecret     string
		BcryptCost    int
		AdminEmail    string
		AdminPassword string
		AdminName     string
	}
	RateLimit struct {
		Window time.Duration
		Max    int
	}
	Storage struct {
		Driver        string
		LocalDir      string
		PublicPath    string
		Bucket        string
		KeyPrefix     string
		Region        string
		Endpoint      string
		PublicBaseURL string
	}
	AWS struct {
		Profile string
	}
	Maintenance struct {
		Schedule string
	}
	Log struct {
		Level  string
		Format string
	}
}

// legacyEnv maps config keys to the plain environment names older deployments use.
var legacyEnv = map[string][]string{
	"auth.jwtsecret":     {"JWT_SECRET"},
	"auth.adminemail":    {"ADMIN_EMAIL"},
	"auth.adminpassword": {"ADMIN_PASSWORD"},
	"server.port":        {"PORT", "RAILWAY_PORT"},
}

// Load reads configuration from environment variables, an optional .env file
// and an optional config file in the working directory.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:5000")
	v.SetDefault("server.port", "")
	v.SetDefault("server.allowedorigins", []string{})
	v.SetDefault("server.trustedproxies", []string{})
	v.SetDefault("server.bodylimit", 10<<20)
	v.SetDefault("database.path", "data/portfolio.db")
	v.SetDefault("database.seed", true)
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.bcryptcost", 10)
	v.SetDefault("auth.adminemail", "admin@example.com")
	v.SetDefault("auth.adminpassword", "admin123")
	v.SetDefault("auth.adminname", "Admin User")
	v.SetDefault("ratelimit.window", "15m")
	v.SetDefault("ratelimit.max", 100)
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.localdir", "public")
	v.SetDefault("storage.publicpath", "/static")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "portfolio")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.publicbaseurl", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("maintenance.schedule", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	for key, names := range legacyEnv {
		envName := "PORTFOLIO_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, envName}, names...)...); err != nil {
			return Config{}, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Server.Port != "" {
		host, _, err := net.SplitHostPort(cfg.Server.Addr)
		if err != nil {
			host = "0.0.0.0"
		}
		cfg.Server.Addr = net.JoinHostPort(host, cfg.Server.Port)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with. A missing JWT
// secret is left to the token service so that the CLI can run without one.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" {
			return errors.New("storage.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.RateLimit.Max <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("ratelimit.max and ratelimit.window must be positive")
	}
	for _, proxy := range c.Server.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("server.trustedproxies: %q is not an IP or CIDR", proxy)
			}
		}
	}
	if c.Server.BodyLimit <= 0 {
		return errors.New("server.bodylimit must be positive")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// NewLogger builds the process logger from the log section.
func (c Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if strings.EqualFold(c.Log.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if level, err := logrus.ParseLevel(c.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
