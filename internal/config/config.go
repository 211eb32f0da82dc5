package config

import (
	"fmt"
	"os"
	"time"

	"github.com/asianchinaboi/brocord/internal/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvToken       = "TOKEN"
	EnvMode        = "APP_ENV"
	EnvDatabaseURL = "DATABASE_URL"

	ModeProduction = "production"
)

type Config struct {
	Gateway Gateway `yaml:"gateway"`
	Log     Log     `yaml:"log"`
	Status  Status  `yaml:"status"`
	Journal Journal `yaml:"journal"`
}

type Gateway struct {
	URL            string        `yaml:"url"` //version and encoding live in the query string
	Intents        int           `yaml:"intents"`
	ClientName     string        `yaml:"clientName"` //sent as both $browser and $device
	OS             string        `yaml:"os"`         //empty means runtime.GOOS
	ConnectTimeout time.Duration `yaml:"connectTimeout"`
	Node           int64         `yaml:"node"` //snowflake node for connection ids
}

type Log struct {
	Dir string `yaml:"dir"`
}

type Status struct {
	Enabled bool    `yaml:"enabled"`
	Host    string  `yaml:"host"`
	Port    string  `yaml:"port"`
	Timeout timeout `yaml:"timeout"`
}

type timeout struct {
	Server time.Duration `yaml:"server"`
	Write  time.Duration `yaml:"write"`
	Read   time.Duration `yaml:"read"`
	Idle   time.Duration `yaml:"idle"`
}

type Journal struct {
	Enabled  bool   `yaml:"enabled"`
	DSN      string `yaml:"dsn"`
	Compress bool   `yaml:"compress"`
	Buffer   int    `yaml:"buffer"`
}

func Default() *Config {
	return &Config{
		Gateway: Gateway{
			URL:            "wss://gateway.discord.gg/?v=9&encoding=json",
			Intents:        513,
			ClientName:     "brocord",
			ConnectTimeout: 15 * time.Second,
		},
		Log: Log{
			Dir: "logs",
		},
		Status: Status{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    "8080",
			Timeout: timeout{
				Server: 15 * time.Second,
				Write:  15 * time.Second,
				Read:   15 * time.Second,
				Idle:   15 * time.Second,
			},
		},
		Journal: Journal{
			Enabled:  false,
			Compress: true,
			Buffer:   256,
		},
	}
}

// Load reads the yaml file at path, writing the defaults there first if the
// file does not exist. Environment overrides are applied afterwards.
func Load(path string) (conf *Config, created bool, err error) {
	conf, err = read(path)
	if os.IsNotExist(err) {
		conf, err = create(path)
		created = true
	}
	if err != nil {
		return nil, false, err
	}
	if dsn := os.Getenv(EnvDatabaseURL); dsn != "" {
		conf.Journal.DSN = dsn
	}
	if err := conf.validate(); err != nil {
		return nil, created, err
	}
	return conf, created, nil
}

func read(path string) (*Config, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0644)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	conf := Default()
	if err := yaml.NewDecoder(file).Decode(conf); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return conf, nil
}

func create(path string) (*Config, error) {
	conf := Default()
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	e := yaml.NewEncoder(file)
	defer e.Close()
	if err := e.Encode(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) validate() error {
	if c.Gateway.URL == "" {
		return fmt.Errorf("%w: gateway.url is empty", errors.ErrInvalidConfig)
	}
	if c.Journal.Enabled && c.Journal.DSN == "" {
		return fmt.Errorf("%w: journal enabled without dsn", errors.ErrInvalidConfig)
	}
	if c.Journal.Buffer < 0 {
		return fmt.Errorf("%w: journal.buffer is negative", errors.ErrInvalidConfig)
	}
	return nil
}

// LoadEnv pulls an optional .env file into the process environment. Variables
// already set take precedence.
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// Token is read on every call so a rotated credential is picked up by the next
// identify.
func Token() string {
	return os.Getenv(EnvToken)
}

// Console reports whether log output should also go to stdout.
func Console() bool {
	return os.Getenv(EnvMode) != ModeProduction
}
