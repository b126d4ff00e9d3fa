package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-nft-registry/internal/domain"
)

func TestLoadRegistryAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *RegistryAPIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 20
  write_timeout: 20
  idle_timeout: 180
auth:
  jwt_public_key: "test-public-key"
  api_keys:
    - "key1"
    - "key2"
storage:
  path: "/var/lib/registry"
registry:
  owner_id: "registry.near"
  storage_price_per_byte: "1000"
  record_overhead_bytes: 64
  stock_media: "bafy-stock"
  collection:
    name: "Test Collection"
    symbol: "TST"
    base_uri: "https://ipfs.io/ipfs/"
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_STREAM"
  max_reconnects: 5
  reconnect_wait: "5s"
  duplicate_window: "10m"
relay:
  enabled: true
  batch_size: 25
  poll_interval: "250ms"
  max_retry_elapsed: "1m"
worker:
  pool_size: 8
`,
			expectError: false,
			validate: func(t *testing.T, cfg *RegistryAPIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 20, cfg.Server.ReadTimeout)
				assert.Equal(t, 180, cfg.Server.IdleTimeout)
				assert.Equal(t, "test-public-key", cfg.Auth.JWTPublicKey)
				assert.Len(t, cfg.Auth.APIKeys, 2)
				assert.Equal(t, "/var/lib/registry", cfg.Storage.Path)
				assert.Equal(t, "registry.near", cfg.Registry.OwnerID)
				assert.Equal(t, "1000", cfg.Registry.StoragePricePerByte)
				assert.Equal(t, uint64(64), cfg.Registry.RecordOverheadBytes)
				assert.Equal(t, "bafy-stock", cfg.Registry.StockMedia)
				assert.Equal(t, "Test Collection", cfg.Registry.Collection.Name)
				assert.Equal(t, "TST", cfg.Registry.Collection.Symbol)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, 5*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, 10*time.Minute, cfg.NATS.DuplicateWindow)
				assert.True(t, cfg.Relay.Enabled)
				assert.Equal(t, 25, cfg.Relay.BatchSize)
				assert.Equal(t, 250*time.Millisecond, cfg.Relay.PollInterval)
				assert.Equal(t, time.Minute, cfg.Relay.MaxRetryElapsed)
				assert.Equal(t, 8, cfg.Worker.WorkerPoolSize)
			},
		},
		{
			name:        "missing config file - should work with env vars",
			configFile:  "",
			expectError: false,
			validate: func(t *testing.T, cfg *RegistryAPIConfig) {
				assert.NotNil(t, cfg)
				assert.False(t, cfg.Debug)                  // default
				assert.Equal(t, "0.0.0.0", cfg.Server.Host) // default
				assert.Equal(t, 8080, cfg.Server.Port)      // default
				assert.Equal(t, "10000000000000000000", cfg.Registry.StoragePricePerByte)
			},
		},
		{
			name: "config with defaults",
			configFile: `
registry:
  owner_id: "registry.near"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *RegistryAPIConfig) {
				assert.Equal(t, 10, cfg.Server.ReadTimeout)  // default
				assert.Equal(t, 10, cfg.Server.WriteTimeout) // default
				assert.Equal(t, 120, cfg.Server.IdleTimeout) // default
				assert.Equal(t, "data/registry", cfg.Storage.Path)
				assert.Equal(t, "10000000000000000000", cfg.Registry.StoragePricePerByte)
				assert.Equal(t, uint64(40), cfg.Registry.RecordOverheadBytes)
				assert.Equal(t, domain.STOCK_MEDIA_CID, cfg.Registry.StockMedia)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, "NFT_REGISTRY", cfg.NATS.StreamName)
				assert.Equal(t, 2*time.Minute, cfg.NATS.DuplicateWindow)
				assert.False(t, cfg.Relay.Enabled)
				assert.Equal(t, 100, cfg.Relay.BatchSize)
				assert.Equal(t, time.Second, cfg.Relay.PollInterval)
				assert.Equal(t, 30*time.Second, cfg.Relay.MaxRetryElapsed)
				assert.Equal(t, 4, cfg.Worker.WorkerPoolSize)
			},
		},
		{
			name: "invalid yaml",
			configFile: `
server:
  port: invalid
`,
			expectError: true, // Invalid port should cause unmarshal error
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var configFile string

			if tt.configFile != "" {
				tmpDir := t.TempDir()
				configFile = filepath.Join(tmpDir, "config.yaml")
				err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
				require.NoError(t, err)
			}

			cfg, err := LoadRegistryAPIConfig(configFile, t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				tt.validate(t, cfg)
			}
		})
	}
}

func TestRegistryConfig_PricePerByte(t *testing.T) {
	cfg := RegistryConfig{StoragePricePerByte: "10000000000000000000"}
	price, err := cfg.PricePerByte()
	require.NoError(t, err)
	assert.Equal(t, "10000000000000000000", price.String())

	cfg.StoragePricePerByte = "ten"
	_, err = cfg.PricePerByte()
	require.ErrorIs(t, err, domain.ErrInvalidBalance)
}

func TestRegistryConfig_Owner(t *testing.T) {
	cfg := RegistryConfig{OwnerID: "registry.near"}
	owner, err := cfg.Owner()
	require.NoError(t, err)
	assert.Equal(t, domain.AccountID("registry.near"), owner)

	cfg.OwnerID = "Not An Account"
	_, err = cfg.Owner()
	require.ErrorIs(t, err, domain.ErrInvalidAccountID)
}

func TestRegistryConfig_CollectionMetadata(t *testing.T) {
	t.Run("default collection", func(t *testing.T) {
		cfg := RegistryConfig{}
		assert.Equal(t, domain.DefaultCollectionMetadata(), cfg.CollectionMetadata())
	})

	t.Run("configured collection", func(t *testing.T) {
		cfg := RegistryConfig{Collection: CollectionConfig{
			Name:    "Test Collection",
			Symbol:  "TST",
			BaseURI: "https://ipfs.io/ipfs/",
		}}
		metadata := cfg.CollectionMetadata()
		assert.Equal(t, domain.NFT_COLLECTION_SPEC, metadata.Spec)
		assert.Equal(t, "Test Collection", metadata.Name)
		assert.Equal(t, "TST", metadata.Symbol)
		require.NotNil(t, metadata.BaseURI)
		assert.Equal(t, "https://ipfs.io/ipfs/", *metadata.BaseURI)
		assert.Nil(t, metadata.Icon)
		assert.Nil(t, metadata.Reference)
		require.NoError(t, metadata.Validate())
	})
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	err := os.MkdirAll(envDir, 0750)
	require.NoError(t, err)

	// Viper uses the NFT_REGISTRY_ prefix, so env vars need the prefix
	envFile := filepath.Join(envDir, ".env")
	envContent := `NFT_REGISTRY_DEBUG=true
NFT_REGISTRY_STORAGE_PATH=/env/registry
NFT_REGISTRY_REGISTRY_OWNER_ID=env.near
NFT_REGISTRY_RELAY_ENABLED=true
NFT_REGISTRY_RELAY_BATCH_SIZE=7
`
	err = os.WriteFile(envFile, []byte(envContent), 0600)
	require.NoError(t, err)
	for _, key := range []string{
		"NFT_REGISTRY_DEBUG",
		"NFT_REGISTRY_STORAGE_PATH",
		"NFT_REGISTRY_REGISTRY_OWNER_ID",
		"NFT_REGISTRY_RELAY_ENABLED",
		"NFT_REGISTRY_RELAY_BATCH_SIZE",
	} {
		key := key
		t.Cleanup(func() { _ = os.Unsetenv(key) })
	}

	// Config file values must be overridden by the environment
	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
debug: false
storage:
  path: /file/registry
registry:
  owner_id: file.near
relay:
  enabled: false
  batch_size: 50
`
	err = os.WriteFile(configPath, []byte(configFile), 0600)
	require.NoError(t, err)

	cfg, err := LoadRegistryAPIConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "/env/registry", cfg.Storage.Path)
	assert.Equal(t, "env.near", cfg.Registry.OwnerID)
	assert.True(t, cfg.Relay.Enabled)
	assert.Equal(t, 7, cfg.Relay.BatchSize)
}
