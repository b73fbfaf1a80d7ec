package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8001", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.GoldAPITimeout)
	assert.Equal(t, "gpt-4o-mini", cfg.AIModel)
	assert.Equal(t, 10, cfg.ChatContextWindow)
	assert.Contains(t, cfg.DBDSN, "tcp(127.0.0.1:3306)/goldsmith")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_driver: sqlite
db_name: shop
price_cache_ttl: 30s
telegram_chat_id: "42"
`), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TELEGRAM_CHAT_ID", "99")
	t.Setenv("GOLD_API_TIMEOUT", "5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "shop.db", cfg.DBDSN)
	assert.Equal(t, 30*time.Second, cfg.PriceCacheTTL)
	assert.Equal(t, "99", cfg.TelegramChatID)
	assert.Equal(t, 5*time.Second, cfg.GoldAPITimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_BadFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}
