package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShamarKellman/power-tranz/internal/core/cardrules"
)

func TestBuildRuleset_Default(t *testing.T) {
	rs, err := (&Config{}).BuildRuleset()
	require.NoError(t, err)
	assert.Equal(t, 12, rs.Len())
}

func TestBuildRuleset_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	table := `[{"niceType": "Visa", "type": "visa", "patterns": ["4"], "gaps": [4, 8, 12],
		"lengths": ["16"], "code": {"name": "CVV", "size": 3}, "luhnCheck": true}]`
	require.NoError(t, os.WriteFile(path, []byte(table), 0o600))

	rs, err := (&Config{RulesFile: path}).BuildRuleset()
	require.NoError(t, err)
	assert.Equal(t, []string{cardrules.Visa}, rs.IDs())
}

func TestBuildRuleset_Errors(t *testing.T) {
	_, err := (&Config{RulesFile: filepath.Join(t.TempDir(), "missing.json")}).BuildRuleset()
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"niceType": "Visa", "type": "visa"}]`), 0o600))
	_, err = (&Config{RulesFile: path}).BuildRuleset()
	assert.ErrorIs(t, err, cardrules.ErrConfiguration)
}
