package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Format(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Stderr: &buf})
	require.NoError(t, err)

	logger.Info("Schema contains 4 classes")
	logger.Debug("hidden")
	require.NoError(t, logger.Sync())

	assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] \[INFO\] Schema contains 4 classes\n$`, buf.String())
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantDebug bool
		wantInfo  bool
	}{
		{"default", Config{}, false, true},
		{"debug flag", Config{Debug: true}, true, true},
		{"debug flag beats level", Config{Level: "error", Debug: true}, true, true},
		{"warn", Config{Level: "warn"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.cfg.Stderr = &buf
			logger, err := New(tt.cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDebug, logger.Core().Enabled(zap.DebugLevel))
			assert.Equal(t, tt.wantInfo, logger.Core().Enabled(zap.InfoLevel))
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemaprof.log")
	logger, err := New(Config{File: path, Level: "debug"})
	require.NoError(t, err)

	logger.Debug("Pruned slot owner")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] Pruned slot owner")
}
