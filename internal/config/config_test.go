package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candidates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_Load_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "votes", cfg.KafkaTopic)
	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.ReportInterval)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.Candidates)
}

func Test_Load_Env(t *testing.T) {
	t.Setenv("BALLOT_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("BALLOT_CANDIDATES", "Carol")
	t.Setenv("BALLOT_ALLOWED_VOTERS", "v1,v2")
	t.Setenv("BALLOT_CANDIDATES_FILE", writeFile(t, "candidates:\n  - Alice\n  - Bob\n"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, cfg.Candidates)
	assert.Equal(t, []string{"v1", "v2"}, cfg.AllowedVoters)
}

func Test_Load_BadEnv(t *testing.T) {
	t.Setenv("BALLOT_REPORT_INTERVAL", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "parse env:")
}

func Test_LoadCandidates(t *testing.T) {
	names, err := LoadCandidates(writeFile(t, "candidates:\n  - B\n  - A\n  - C\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, names)

	_, err = LoadCandidates(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadCandidates(writeFile(t, "candidates: [unterminated"))
	assert.ErrorContains(t, err, "parse candidates file")
}
