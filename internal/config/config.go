package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-nft-registry/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// StorageConfig holds the leveldb storage configuration
type StorageConfig struct {
	// Path is the leveldb directory. Empty keeps everything in memory.
	Path string `mapstructure:"path"`
}

// CollectionConfig holds the collection metadata used when the registry is first initialized
type CollectionConfig struct {
	Name          string `mapstructure:"name"`
	Symbol        string `mapstructure:"symbol"`
	Icon          string `mapstructure:"icon"`
	BaseURI       string `mapstructure:"base_uri"`
	Reference     string `mapstructure:"reference"`
	ReferenceHash string `mapstructure:"reference_hash"`
}

// RegistryConfig holds the token registry configuration
type RegistryConfig struct {
	OwnerID             string           `mapstructure:"owner_id"`
	StoragePricePerByte string           `mapstructure:"storage_price_per_byte"` // decimal, smallest currency unit
	RecordOverheadBytes uint64           `mapstructure:"record_overhead_bytes"`
	StockMedia          string           `mapstructure:"stock_media"`
	Collection          CollectionConfig `mapstructure:"collection"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL             string        `mapstructure:"url"`
	StreamName      string        `mapstructure:"stream_name"`
	MaxReconnects   int           `mapstructure:"max_reconnects"`
	ReconnectWait   time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName  string        `mapstructure:"connection_name"`
	DuplicateWindow time.Duration `mapstructure:"duplicate_window"`
}

// RelayConfig holds the outbox relay configuration
type RelayConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	BatchSize       int           `mapstructure:"batch_size"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	MaxRetryElapsed time.Duration `mapstructure:"max_retry_elapsed"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize int `mapstructure:"pool_size"`
}

// RegistryAPIConfig holds configuration for the registry API server
type RegistryAPIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Storage    StorageConfig  `mapstructure:"storage"`
	Registry   RegistryConfig `mapstructure:"registry"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Relay      RelayConfig    `mapstructure:"relay"`
	Worker     WorkerConfig   `mapstructure:"worker"`
}

// LoadRegistryAPIConfig loads configuration for the registry API server
func LoadRegistryAPIConfig(configFile string, envPath string) (*RegistryAPIConfig, error) {
	v := configureViper("registry-api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("storage.path", "data/registry")
	v.SetDefault("registry.storage_price_per_byte", "10000000000000000000")
	v.SetDefault("registry.record_overhead_bytes", 40)
	v.SetDefault("registry.stock_media", domain.STOCK_MEDIA_CID)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "NFT_REGISTRY")
	v.SetDefault("nats.connection_name", "registry-api")
	v.SetDefault("nats.duplicate_window", "2m")
	v.SetDefault("relay.enabled", false)
	v.SetDefault("relay.batch_size", 100)
	v.SetDefault("relay.poll_interval", "1s")
	v.SetDefault("relay.max_retry_elapsed", "30s")
	v.SetDefault("worker.pool_size", 4)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config RegistryAPIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/registry-api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("NFT_REGISTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Storage
		"storage.path",
		// Registry
		"registry.owner_id",
		"registry.storage_price_per_byte",
		"registry.record_overhead_bytes",
		"registry.stock_media",
		"registry.collection.name",
		"registry.collection.symbol",
		"registry.collection.icon",
		"registry.collection.base_uri",
		"registry.collection.reference",
		"registry.collection.reference_hash",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.duplicate_window",
		// Relay
		"relay.enabled",
		"relay.batch_size",
		"relay.poll_interval",
		"relay.max_retry_elapsed",
		// Worker
		"worker.pool_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// PricePerByte parses the configured storage price
func (c *RegistryConfig) PricePerByte() (domain.Balance, error) {
	price, err := domain.ParseBalance(c.StoragePricePerByte)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("invalid registry.storage_price_per_byte: %w", err)
	}
	return price, nil
}

// Owner parses the configured registry owner
func (c *RegistryConfig) Owner() (domain.AccountID, error) {
	owner, err := domain.ParseAccountID(c.OwnerID)
	if err != nil {
		return "", fmt.Errorf("invalid registry.owner_id: %w", err)
	}
	return owner, nil
}

// CollectionMetadata builds the collection metadata to initialize the registry with.
// Without a configured name the built-in default collection is used.
func (c *RegistryConfig) CollectionMetadata() domain.CollectionMetadata {
	if c.Collection.Name == "" {
		return domain.DefaultCollectionMetadata()
	}

	metadata := domain.CollectionMetadata{
		Spec:   domain.NFT_COLLECTION_SPEC,
		Name:   c.Collection.Name,
		Symbol: c.Collection.Symbol,
	}
	if c.Collection.Icon != "" {
		metadata.Icon = &c.Collection.Icon
	}
	if c.Collection.BaseURI != "" {
		metadata.BaseURI = &c.Collection.BaseURI
	}
	if c.Collection.Reference != "" {
		metadata.Reference = &c.Collection.Reference
	}
	if c.Collection.ReferenceHash != "" {
		metadata.ReferenceHash = &c.Collection.ReferenceHash
	}
	return metadata
}
