package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 15
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
ledger:
  rpc_url: "https://alfajores-forno.celo-testnet.org"
  chain_id: "eip155:44787"
  contract_address: "0x000000000000000000000000000000000000dEaD"
  private_key: "0xdeadbeef"
  call_timeout: "45s"
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_STREAM"
auth:
  api_keys:
    - key-one
    - key-two
referral:
  points_per_redemption: 25
  allow_self_redeem: true
  default_max_uses: 50
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 15, cfg.Server.ReadTimeout)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "testuser", cfg.Database.User)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "https://alfajores-forno.celo-testnet.org", cfg.Ledger.RPCURL)
				assert.Equal(t, "eip155:44787", string(cfg.Ledger.ChainID))
				assert.Equal(t, "0x000000000000000000000000000000000000dEaD", cfg.Ledger.ContractAddress)
				assert.Equal(t, 45*time.Second, cfg.Ledger.CallTimeout)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, []string{"key-one", "key-two"}, cfg.Auth.APIKeys)
				assert.Equal(t, 25, cfg.Referral.PointsPerRedemption)
				assert.True(t, cfg.Referral.AllowSelfRedeem)
				assert.Equal(t, uint64(50), cfg.Referral.DefaultMaxUses)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				// Check defaults
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "eip155:44787", string(cfg.Ledger.ChainID))
				assert.Equal(t, 30*time.Second, cfg.Ledger.CallTimeout)
				assert.Equal(t, "REFERRAL_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, 10, cfg.Referral.PointsPerRedemption)
				assert.False(t, cfg.Referral.AllowSelfRedeem)
				assert.Equal(t, uint64(100), cfg.Referral.DefaultMaxUses)
			},
		},
		{
			name: "unsupported chain",
			configFile: `
database:
  host: localhost
ledger:
  chain_id: "eip155:1"
`,
			expectError: true,
			validate:    nil,
		},
		{
			name:        "missing config file",
			configFile:  "",
			expectError: false,
			validate:    nil,
		},
		{
			name: "invalid yaml",
			configFile: `
				server:
				  port: invalid
			`,
			expectError: true,
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			var configFile string

			if tt.configFile != "" {
				configFile = filepath.Join(tmpDir, "config.yaml")
				err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
				require.NoError(t, err)
			} else {
				configFile = filepath.Join(tmpDir, "nonexistent.yaml")
			}

			cfg, err := LoadAPIConfig(configFile, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				if tt.validate != nil {
					require.NoError(t, err)
					require.NotNil(t, cfg)
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadSeedConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *SeedConfig)
	}{
		{
			name: "valid config file",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			expectError: false,
			validate: func(t *testing.T, cfg *SeedConfig) {
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "testdb", cfg.Database.DBName)
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: testdb
`,
			expectError: true,
			validate:    nil,
		},
		{
			name: "missing database name",
			configFile: `
database:
  host: localhost
`,
			expectError: true,
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadSeedConfig(configFile, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "esperenza",
		Password: "secret",
		DBName:   "referrals",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=esperenza password=secret dbname=referrals sslmode=require",
		cfg.DSN())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ESPERENZA_DATABASE_HOST", "env-host")
	t.Setenv("ESPERENZA_REFERRAL_POINTS_PER_REDEMPTION", "42")

	cfg, err := LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 42, cfg.Referral.PointsPerRedemption)
}
