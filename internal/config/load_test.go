package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_HappyPath(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	tempConfigsSubDir := filepath.Join(tempDir, "configs")
	err = os.Mkdir(tempConfigsSubDir, 0755)
	require.NoError(t, err)

	testAppName := "TestLedger"
	testPort := 9090
	testLogLevel := "debug"
	testBaseURL := "http://backend.test/api/v2"

	envContent := fmt.Sprintf(
		"APP_NAME=%s\nSERVER_PORT=%d\nLOG_LEVEL=%s\nREMOTE_BASE_URL=%s\n",
		testAppName, testPort, testLogLevel, testBaseURL,
	)
	envFilePath := filepath.Join(tempConfigsSubDir, "test_happy.env")
	err = os.WriteFile(envFilePath, []byte(envContent), 0644)
	require.NoError(t, err)

	originalWD, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		_ = os.Chdir(originalWD)
	}()

	err = os.Chdir(tempDir)
	require.NoError(t, err)

	cfg, err := LoadConfig("test_happy")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, testAppName, cfg.Application.Name)
	assert.Equal(t, testPort, cfg.Server.Port)
	assert.Equal(t, testLogLevel, cfg.Logging.Level)
	assert.Equal(t, testBaseURL, cfg.Remote.BaseURL)

	assert.Equal(t, "development", cfg.Application.Env)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.Remote.Timeout)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "ledger_row_saved", cfg.Kafka.Topic)
	assert.Equal(t, 4, cfg.Reconcile.WorkerPoolSize)
	assert.Equal(t, 366, cfg.Reconcile.MaxRangeDays)

	cfgWithName, err := LoadConfigWithName("configs/test_happy") // Viper will look for configs/test_happy.env
	require.NoError(t, err)
	require.NotNil(t, cfgWithName)
	assert.Equal(t, testAppName, cfgWithName.Application.Name)

	// Test LoadConfigWithNameAndType
	cfgWithNameAndType, err := LoadConfigWithNameAndType("configs/test_happy", "env")
	require.NoError(t, err)
	require.NotNil(t, cfgWithNameAndType)
	assert.Equal(t, testAppName, cfgWithNameAndType.Application.Name)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{
				Port:            8080,
				ShutdownTimeout: time.Second,
				ReadTimeout:     time.Second,
				WriteTimeout:    time.Second,
				IdleTimeout:     time.Second,
			},
			Remote: RemoteConfig{
				BaseURL: "http://localhost:8000/api/v2",
				Timeout: time.Second,
			},
			Reconcile: ReconcileConfig{
				WorkerPoolSize: 4,
				MaxRangeDays:   31,
			},
		}
	}

	t.Run("ValidConfig", func(t *testing.T) {
		assert.NoError(t, valid().validate())
	})

	t.Run("MissingRemoteBaseURL", func(t *testing.T) {
		cfg := valid()
		cfg.Remote.BaseURL = ""
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "REMOTE_BASE_URL")
	})

	t.Run("InvalidServerPort", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = 0
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SERVER_PORT")
	})

	t.Run("KafkaValidatedOnlyWhenEnabled", func(t *testing.T) {
		cfg := valid()
		cfg.Kafka = KafkaConfig{Enabled: false}
		assert.NoError(t, cfg.validate())

		cfg.Kafka.Enabled = true
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "KAFKA_BROKERS")
		assert.Contains(t, err.Error(), "KAFKA_TOPIC")
		assert.Contains(t, err.Error(), "KAFKA_WRITE_TIMEOUT")
	})

	t.Run("InvalidReconcilePool", func(t *testing.T) {
		cfg := valid()
		cfg.Reconcile.WorkerPoolSize = 0
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RECONCILE_WORKER_POOL_SIZE")
	})
}
