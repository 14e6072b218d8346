package logging

import (
	"testing"

	"github.com/Korolev91/estatehub/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		wantLevel zerolog.Level
	}{
		{
			name:      "defaults to info",
			cfg:       config.LoggingConfig{},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:      "debug level",
			cfg:       config.LoggingConfig{Level: "debug"},
			wantLevel: zerolog.DebugLevel,
		},
		{
			name:      "unknown level falls back to info",
			cfg:       config.LoggingConfig{Level: "loud"},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:      "console format on stderr",
			cfg:       config.LoggingConfig{Level: "warn", Format: "console", Output: "stderr"},
			wantLevel: zerolog.WarnLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.cfg)
			assert.Equal(t, tt.wantLevel, log.GetLevel())
		})
	}
}
