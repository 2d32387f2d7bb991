// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file, .env
// files and environment variables.
package config

import (
	"cmp"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is used when neither a flag, the config file nor the
// environment provide an API base URL.
const DefaultAPIBaseURL = "http://localhost:8000/api/v1"

// DefaultEnv is the environment name used when APP_ENV is unset.
const DefaultEnv = "development"

// Routes holds the remote auth API endpoints. Explicit per-route values take
// precedence over URLs derived from APIBaseURL.
type Routes struct {
	// APIBaseURL is the common prefix of the auth endpoints.
	APIBaseURL string `json:"api_base_url"`
	// Login overrides the login endpoint URL.
	Login string `json:"login_route"`
	// Register overrides the register endpoint URL.
	Register string `json:"register_route"`
	// Logout overrides the logout endpoint URL.
	Logout string `json:"logout_route"`
}

// LoginURL returns the login endpoint, or "" when it cannot be resolved.
func (r Routes) LoginURL() string {
	return r.resolve(r.Login, "/auth/login")
}

// RegisterURL returns the register endpoint, or "" when it cannot be resolved.
func (r Routes) RegisterURL() string {
	return r.resolve(r.Register, "/auth/register")
}

// LogoutURL returns the logout endpoint, or "" when it cannot be resolved.
func (r Routes) LogoutURL() string {
	return r.resolve(r.Logout, "/auth/logout")
}

// URLs returns every resolvable endpoint, login first. A backend may set the
// session cookie from any of them.
func (r Routes) URLs() []string {
	var urls []string
	for _, u := range []string{r.LoginURL(), r.RegisterURL(), r.LogoutURL()} {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func (r Routes) resolve(override, suffix string) string {
	if override != "" {
		return override
	}
	if r.APIBaseURL == "" {
		return ""
	}
	return strings.TrimRight(r.APIBaseURL, "/") + suffix
}

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the web front end's listening address (ip:port).
	Port string `json:"port"`

	// DatabaseDSN holds the connection string of the auth activity journal.
	// The journal is disabled when it is empty.
	DatabaseDSN string `json:"database_dsn"`

	// FrontendURL is the base URL of the web front end, used by the shell
	// client to visit gated pages.
	FrontendURL string `json:"frontend_url"`

	// Env names the runtime environment ("development", "production", ...).
	Env string `json:"env"`

	// LogLevel overrides the level derived from Env.
	LogLevel string `json:"log_level"`

	// Config is the path to the Config file.
	Config string `json:"-"`

	// EnvDir is the directory searched for .env files.
	EnvDir string `json:"-"`

	Routes
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "auth journal db address")
	flag.StringVar(&options.APIBaseURL, "api", DefaultAPIBaseURL, "auth API base URL")
	flag.StringVar(&options.FrontendURL, "frontend", "http://localhost:8080", "web front end base URL")
	flag.StringVar(&options.Env, "env", "", "runtime environment name")
	flag.StringVar(&options.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	flag.StringVar(&options.EnvDir, "env-dir", ".", "directory holding .env files")
}

// Parse parses the command-line flags, .env files, the config file and
// environment variables to set configuration values. It returns a pointer
// to the Options struct containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	if err := Load(options); err != nil {
		log.Fatalf("error while loading config: %v", err)
	}

	return options
}

// Load overlays o with .env files, the JSON config file and environment
// variables, in that order of increasing precedence.
func Load(o *Options) error {
	env := cmp.Or(os.Getenv("APP_ENV"), o.Env, DefaultEnv)
	if err := LoadEnvFiles(cmp.Or(o.EnvDir, "."), env); err != nil {
		return err
	}

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		o.Config = configPath
	}

	if o.Config != "" {
		if _, err := os.Stat(o.Config); err == nil {
			data, err := os.ReadFile(o.Config)
			if err != nil {
				return fmt.Errorf("read config file: %w", err)
			}
			if err := json.Unmarshal(data, o); err != nil {
				return fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	applyEnv(o)
	o.Env = cmp.Or(o.Env, env)

	return nil
}

func applyEnv(o *Options) {
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		o.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		o.DatabaseDSN = dsn
	}
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		o.FrontendURL = frontend
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		o.Env = env
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		o.LogLevel = level
	}
	if base := os.Getenv("API_BASE_URL"); base != "" {
		o.APIBaseURL = base
	}
	if route := os.Getenv("LOGIN_ROUTE"); route != "" {
		o.Login = route
	}
	if route := os.Getenv("REGISTER_ROUTE"); route != "" {
		o.Register = route
	}
	if route := os.Getenv("LOGOUT_ROUTE"); route != "" {
		o.Logout = route
	}
}

// EnvFiles lists the .env files for env from highest to lowest priority.
func EnvFiles(env string) []string {
	return []string{
		".env." + env + ".local",
		".env.local",
		".env." + env,
		".env",
	}
}

// LoadEnvFiles loads the existing .env files of dir into the process
// environment. Variables already set are never overridden, and a file only
// fills in what higher priority files left unset.
func LoadEnvFiles(dir, env string) error {
	var existing []string
	for _, name := range EnvFiles(env) {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}
