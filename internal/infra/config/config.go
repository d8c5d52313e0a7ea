package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the console.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Service  ServiceConfig  `yaml:"service"`
	UI       UIConfig       `yaml:"ui"`
	Outfits  OutfitsConfig  `yaml:"outfits"`
	Upload   UploadConfig   `yaml:"upload"`
	Drive    DriveConfig    `yaml:"drive"`
	Lookbook LookbookConfig `yaml:"lookbook"`
	Log      LogConfig      `yaml:"log"`
}

// HTTPConfig controls the local console server.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	MaxUploadBytes int64         `yaml:"maxUploadBytes"`
}

// ServiceConfig points the gateway at the remote wardrobe service.
type ServiceConfig struct {
	BaseURL        string        `yaml:"baseUrl"`
	UserID         string        `yaml:"userId"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// UIConfig tunes controller behavior visible to the user.
type UIConfig struct {
	SuggestionCount  int           `yaml:"suggestionCount"`
	ProgressStep     int           `yaml:"progressStep"`
	ProgressInterval time.Duration `yaml:"progressInterval"`
	WelcomeDelay     time.Duration `yaml:"welcomeDelay"`
	WelcomeMessage   string        `yaml:"welcomeMessage"`
}

// OutfitsConfig selects where suggested outfits are kept until saved.
type OutfitsConfig struct {
	Store      string        `yaml:"store"`
	TTL        time.Duration `yaml:"ttl"`
	ValkeyAddr string        `yaml:"valkeyAddr"`
}

// UploadConfig controls pre-upload processing.
type UploadConfig struct {
	Optimize OptimizeConfig `yaml:"optimize"`
	Archive  ArchiveConfig  `yaml:"archive"`
}

// OptimizeConfig drives image downscaling before upload.
type OptimizeConfig struct {
	Enabled      bool `yaml:"enabled"`
	MaxDimension int  `yaml:"maxDimension"`
	Quality      int  `yaml:"quality"`
}

// ArchiveConfig keeps a copy of uploaded originals in object storage.
type ArchiveConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Backend   string `yaml:"backend"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// DriveConfig enables importing images from Google Drive.
type DriveConfig struct {
	Enabled         bool   `yaml:"enabled"`
	CredentialsFile string `yaml:"credentialsFile"`
}

// LookbookConfig enables PDF export through headless Chrome.
type LookbookConfig struct {
	Enabled    bool          `yaml:"enabled"`
	ChromePath string        `yaml:"chromePath"`
	Timeout    time.Duration `yaml:"timeout"`
	PublicURL  string        `yaml:"publicUrl"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

const (
	OutfitStoreMemory = "memory"
	OutfitStoreValkey = "valkey"

	ArchiveBackendS3 = "s3"
)

// Load reads configuration from .env, a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadDotEnv populates unset environment variables from ENV_FILE or ./.env.
func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_MAX_UPLOAD_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.HTTP.MaxUploadBytes = parsed
		}
	}
	if v := os.Getenv("SERVICE_BASE_URL"); v != "" {
		cfg.Service.BaseURL = v
	}
	if v := os.Getenv("SERVICE_USER_ID"); v != "" {
		cfg.Service.UserID = v
	}
	if v := os.Getenv("SERVICE_REQUEST_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Service.RequestTimeout = parsed
		}
	}
	if v := os.Getenv("UI_SUGGESTION_COUNT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.UI.SuggestionCount = parsed
		}
	}
	if v := os.Getenv("UI_PROGRESS_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.UI.ProgressInterval = parsed
		}
	}
	if v := os.Getenv("UI_WELCOME_DELAY"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.UI.WelcomeDelay = parsed
		}
	}
	if v := os.Getenv("OUTFITS_STORE"); v != "" {
		cfg.Outfits.Store = strings.ToLower(v)
	}
	if v := os.Getenv("OUTFITS_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Outfits.TTL = parsed
		}
	}
	if v := os.Getenv("OUTFITS_VALKEY_ADDR"); v != "" {
		cfg.Outfits.ValkeyAddr = v
	}
	if v := os.Getenv("UPLOAD_OPTIMIZE_ENABLED"); v != "" {
		cfg.Upload.Optimize.Enabled = parseBool(v)
	}
	if v := os.Getenv("UPLOAD_OPTIMIZE_MAX_DIMENSION"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Upload.Optimize.MaxDimension = parsed
		}
	}
	if v := os.Getenv("UPLOAD_ARCHIVE_ENABLED"); v != "" {
		cfg.Upload.Archive.Enabled = parseBool(v)
	}
	if v := os.Getenv("UPLOAD_ARCHIVE_BACKEND"); v != "" {
		cfg.Upload.Archive.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("UPLOAD_ARCHIVE_ENDPOINT"); v != "" {
		cfg.Upload.Archive.Endpoint = v
	}
	if v := os.Getenv("UPLOAD_ARCHIVE_ACCESS_KEY"); v != "" {
		cfg.Upload.Archive.AccessKey = v
	}
	if v := os.Getenv("UPLOAD_ARCHIVE_SECRET_KEY"); v != "" {
		cfg.Upload.Archive.SecretKey = v
	}
	if v := os.Getenv("UPLOAD_ARCHIVE_BUCKET"); v != "" {
		cfg.Upload.Archive.Bucket = v
	}
	if v := os.Getenv("UPLOAD_ARCHIVE_REGION"); v != "" {
		cfg.Upload.Archive.Region = v
	}
	if v := os.Getenv("DRIVE_ENABLED"); v != "" {
		cfg.Drive.Enabled = parseBool(v)
	}
	if v := os.Getenv("DRIVE_CREDENTIALS_FILE"); v != "" {
		cfg.Drive.CredentialsFile = v
	}
	if v := os.Getenv("LOOKBOOK_ENABLED"); v != "" {
		cfg.Lookbook.Enabled = parseBool(v)
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		cfg.Lookbook.ChromePath = v
	}
	if v := os.Getenv("LOOKBOOK_PUBLIC_URL"); v != "" {
		cfg.Lookbook.PublicURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        "127.0.0.1:8090",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   60 * time.Second,
			MaxUploadBytes: 16 << 20,
		},
		Service: ServiceConfig{
			BaseURL: "http://localhost:5000",
			UserID:  "user123",
		},
		UI: UIConfig{
			SuggestionCount:  3,
			ProgressStep:     5,
			ProgressInterval: 100 * time.Millisecond,
			WelcomeDelay:     time.Second,
			WelcomeMessage:   "Welcome to SmartWardrobe! Start by uploading some of your favorite clothes, and I'll help you organize them and create outfit suggestions.",
		},
		Outfits: OutfitsConfig{
			Store: OutfitStoreMemory,
			TTL:   30 * time.Minute,
		},
		Upload: UploadConfig{
			Optimize: OptimizeConfig{
				Enabled:      true,
				MaxDimension: 1600,
				Quality:      85,
			},
			Archive: ArchiveConfig{
				Backend: ArchiveBackendS3,
				Bucket:  "wardrobe-uploads",
			},
		},
		Lookbook: LookbookConfig{
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		return errors.New("http.maxUploadBytes must be positive")
	}
	if strings.TrimSpace(c.Service.BaseURL) == "" {
		return errors.New("service.baseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Service.UserID) == "" {
		return errors.New("service.userId cannot be empty")
	}
	if c.Service.RequestTimeout < 0 {
		return errors.New("service.requestTimeout cannot be negative")
	}
	if c.UI.SuggestionCount <= 0 {
		return errors.New("ui.suggestionCount must be positive")
	}
	if c.UI.ProgressStep <= 0 || c.UI.ProgressStep > 100 {
		return errors.New("ui.progressStep must be between 1 and 100")
	}
	if c.UI.ProgressInterval <= 0 {
		return errors.New("ui.progressInterval must be positive")
	}
	if c.UI.WelcomeDelay < 0 {
		return errors.New("ui.welcomeDelay cannot be negative")
	}
	switch c.Outfits.Store {
	case OutfitStoreMemory:
	case OutfitStoreValkey:
		if strings.TrimSpace(c.Outfits.ValkeyAddr) == "" {
			return errors.New("outfits.valkeyAddr cannot be empty when the valkey store is selected")
		}
	default:
		return fmt.Errorf("outfits.store %q is not supported", c.Outfits.Store)
	}
	if c.Outfits.TTL <= 0 {
		return errors.New("outfits.ttl must be positive")
	}
	if c.Upload.Optimize.Enabled {
		if c.Upload.Optimize.MaxDimension <= 0 {
			return errors.New("upload.optimize.maxDimension must be positive")
		}
		if c.Upload.Optimize.Quality < 1 || c.Upload.Optimize.Quality > 100 {
			return errors.New("upload.optimize.quality must be between 1 and 100")
		}
	}
	if c.Upload.Archive.Enabled {
		switch c.Upload.Archive.Backend {
		case ArchiveBackendS3:
			if strings.TrimSpace(c.Upload.Archive.Endpoint) == "" {
				return errors.New("upload.archive.endpoint cannot be empty for the s3 backend")
			}
			if strings.TrimSpace(c.Upload.Archive.Bucket) == "" {
				return errors.New("upload.archive.bucket cannot be empty for the s3 backend")
			}
		default:
			return fmt.Errorf("upload.archive.backend %q is not supported", c.Upload.Archive.Backend)
		}
	}
	if c.Drive.Enabled && strings.TrimSpace(c.Drive.CredentialsFile) == "" {
		return errors.New("drive.credentialsFile cannot be empty when drive import is enabled")
	}
	if c.Lookbook.Enabled && c.Lookbook.Timeout <= 0 {
		return errors.New("lookbook.timeout must be positive")
	}
	return nil
}
