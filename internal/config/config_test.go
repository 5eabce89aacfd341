package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/xpledger/internal/domain"
	"github.com/alexanderramin/xpledger/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"XPLEDGER_BACKEND", "XPLEDGER_DB", "XPLEDGER_SCORING", "XPLEDGER_USER", "XPLEDGER_LOG_LEVEL", "XPLEDGER_LOG_FILE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "xpledger.db", filepath.Base(cfg.DSN))
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.ScoringPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("XPLEDGER_BACKEND", "Postgres")
	t.Setenv("XPLEDGER_DB", "postgres://localhost/xp?sslmode=disable")
	t.Setenv("XPLEDGER_SCORING", "/etc/xpledger/rules.yaml")
	t.Setenv("XPLEDGER_USER", "ada")
	t.Setenv("XPLEDGER_LOG_LEVEL", "DEBUG")
	t.Setenv("XPLEDGER_LOG_FILE", "/tmp/xp.log")

	cfg := Load()
	assert.Equal(t, BackendPostgres, cfg.Backend)
	assert.Equal(t, "postgres://localhost/xp?sslmode=disable", cfg.DSN)
	assert.Equal(t, "/etc/xpledger/rules.yaml", cfg.ScoringPath)
	assert.Equal(t, "ada", cfg.Username)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/xp.log", cfg.LogFile)
}

func TestLoad_JSONBackendDefaultsToJSONFile(t *testing.T) {
	t.Setenv("XPLEDGER_BACKEND", "json")
	t.Setenv("XPLEDGER_DB", "")
	assert.Equal(t, "xpledger.json", filepath.Base(Load().DSN))
}

func TestLoad_UnknownBackendIgnored(t *testing.T) {
	t.Setenv("XPLEDGER_BACKEND", "mongo")
	assert.Equal(t, BackendSQLite, Load().Backend)
}

func TestSafeDSN_MasksPasswords(t *testing.T) {
	tests := []struct {
		name string
		cfg  AppConfig
		want string
	}{
		{"sqlite path", AppConfig{Backend: BackendSQLite, DSN: "/tmp/x.db"}, "/tmp/x.db"},
		{"url", AppConfig{Backend: BackendPostgres, DSN: "postgres://ada:s3cret@db:5432/xp?sslmode=disable"},
			"postgres://ada:xxxxx@db:5432/xp?sslmode=disable"},
		{"url query password", AppConfig{Backend: BackendPostgres, DSN: "postgres://db/xp?password=s3cret"},
			"postgres://db/xp?password=xxxxx"},
		{"key value", AppConfig{Backend: BackendPostgres, DSN: "host=db user=ada password=s3cret dbname=xp"},
			"host=db user=ada password=xxxxx dbname=xp"},
		{"quoted key value", AppConfig{Backend: BackendPostgres, DSN: "host=db password='a b' dbname=xp"},
			"host=db password=xxxxx dbname=xp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.SafeDSN()
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "s3cret")
		})
	}
}

func TestLoadRules_EmptyPathIsDefault(t *testing.T) {
	r, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, scoring.DefaultConfig(), r.Config)
	assert.NotEmpty(t, r.Badges)
}

func TestParseRules_YAMLPartialOverride(t *testing.T) {
	doc := []byte(`
base_score: 20
priority_multipliers:
  critical: 3.0
dependency_chain:
  dependent_score_percentage: 0.25
tag_multipliers:
  urgent: 1.5
badges:
  - id: custom
    name: Custom
    criteria:
      total_xp: 5
`)
	r, err := ParseRules(doc, false)
	require.NoError(t, err)

	assert.Equal(t, 20.0, r.BaseScore)
	assert.Equal(t, 3.0, r.PriorityMultipliers.Lookup(domain.PriorityCritical))
	assert.Equal(t, 1.5, r.PriorityMultipliers.Lookup(domain.PriorityHigh), "untouched keys keep defaults")
	assert.True(t, r.DependencyChain.Enabled, "absent booleans keep defaults")
	assert.Equal(t, 0.25, r.DependencyChain.DependentScorePercentage)
	assert.Equal(t, 1.5, r.TagMultipliers.Lookup("urgent"))
	require.Len(t, r.Badges, 1)
	assert.Equal(t, "custom", r.Badges[0].ID)
}

func TestParseRules_EmptyYAML(t *testing.T) {
	r, err := ParseRules(nil, false)
	require.NoError(t, err)
	assert.Equal(t, scoring.DefaultConfig(), r.Config)
}

func TestParseRules_RejectsInvalid(t *testing.T) {
	_, err := ParseRules([]byte(`{"difficulty_multipliers": {"hard": 0.5}}`), true)
	require.ErrorIs(t, err, scoring.ErrInvalidConfig)
}

func TestParseRules_RejectsUnknownField(t *testing.T) {
	_, err := ParseRules([]byte("bse_score: 3\n"), false)
	require.Error(t, err)
}

func TestSaveScoring_RoundTripsThroughLoad(t *testing.T) {
	cfg := scoring.DefaultConfig()
	cfg.BaseScore = 12
	cfg.PenaltyInvertWeights[scoring.ComponentDifficulty] = true

	for _, name := range []string{"rules.yaml", "rules.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, SaveScoring(path, cfg))

			loaded, err := LoadScoring(path)
			require.NoError(t, err)
			assert.Equal(t, scoring.MergeWithDefaults(cfg), loaded)
		})
	}
}

func TestSaveScoring_RefusesInvalid(t *testing.T) {
	cfg := scoring.DefaultConfig()
	cfg.BaseScore = -1
	path := filepath.Join(t.TempDir(), "rules.yaml")

	require.ErrorIs(t, SaveScoring(path, cfg), scoring.ErrInvalidConfig)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
