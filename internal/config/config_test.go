package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Reads the file and fills defaults", func(t *testing.T) {
		// Given: a config file that sets only a few keys
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nredis:\n  enabled: true\n  host: cache\nbot:\n  seek-run: 4\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: the config is loaded
		conf := MustLoad(path)

		// Then: file values win and the rest come from defaults
		assert.Equal(t, "debug", conf.LogLevel)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 4, conf.Bot.SeekRun)
		assert.Equal(t, 5, conf.Bot.BlockRun)
		assert.Equal(t, 500, conf.Chat.Capacity)
		assert.Equal(t, 200, conf.Chat.History)
		assert.Equal(t, "9091", conf.SocketPort)
	})

	t.Run("Panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}

func TestDefault(t *testing.T) {
	conf := Default()

	assert.Equal(t, "info", conf.LogLevel)
	assert.False(t, conf.Redis.Enabled)
	assert.Equal(t, 3, conf.Bot.SeekRun)
	assert.Equal(t, 32, conf.Room.MaxNameLength)
	assert.Equal(t, 64, conf.Results.QueueSize)
}
