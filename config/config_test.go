package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	tests := []struct {
		name string
		want any
	}{
		{"debug", false},
		{"database.type", "sqlite"},
		{"database.path", "hatohol.db"},
		{"redis.address", "127.0.0.1:6379"},
		{"listen.address", "0.0.0.0:33194"},
		{"session.cookie", "HATOHOLSESSID"},
		{"session.prefix", "session_"},
		{"session.expire", 3600},
		{"log.console", true},
		{"log.json", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, viper.Get(tt.name))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	assert.NotNil(t, Load("no-such-file.yml", false))
}
