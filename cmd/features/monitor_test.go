package main

import (
	"testing"
	"time"

	"github.com/farxc/favorita_features/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestMemoryMonitorRecordsPeaks(t *testing.T) {
	m := NewMonitor()
	m.Start(time.Millisecond, logger.New(logger.LevelError))
	time.Sleep(5 * time.Millisecond)

	stats := m.Stop()
	// The sampling goroutine counts itself.
	assert.GreaterOrEqual(t, stats.PeakGoroutines, 2)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/favorita")
	t.Setenv("INPUT_ENCODING", "windows-1252")
	t.Setenv("MONITOR_INTERVAL_MS", "0")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MONITOR_ENABLED", "false")

	cfg := loadConfig()
	assert.Equal(t, "/srv/favorita", cfg.dataDir)
	assert.Equal(t, "windows-1252", cfg.encoding)
	assert.Equal(t, "debug", cfg.logLevel)
	assert.Equal(t, time.Duration(0), cfg.monitorInterval)
	assert.False(t, cfg.monitorEnabled)
}
