package cardrules

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRule_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RuleConfig)
		field  string
	}{
		{"missing display name", func(c *RuleConfig) { c.DisplayName = "" }, "DisplayName"},
		{"missing network id", func(c *RuleConfig) { c.NetworkID = "" }, "NetworkID"},
		{"missing patterns", func(c *RuleConfig) { c.Patterns = nil }, "Patterns"},
		{"empty patterns", func(c *RuleConfig) { c.Patterns = []string{} }, "Patterns"},
		{"missing lengths", func(c *RuleConfig) { c.Lengths = nil }, "Lengths"},
		{"non digit pattern", func(c *RuleConfig) { c.Patterns = []string{"4x"} }, "Patterns[0]"},
		{"negative pattern", func(c *RuleConfig) { c.Patterns = []string{"4", "-4"} }, "Patterns[1]"},
		{"half open range", func(c *RuleConfig) { c.Patterns = []string{"51-"} }, "Patterns[0]"},
		{"inverted pattern range", func(c *RuleConfig) { c.Patterns = []string{"55-51"} }, "Patterns"},
		{"non digit length", func(c *RuleConfig) { c.Lengths = []string{"sixteen"} }, "Lengths[0]"},
		{"inverted length range", func(c *RuleConfig) { c.Lengths = []string{"19-12"} }, "Lengths"},
		{"missing gaps", func(c *RuleConfig) { c.Gaps = nil }, "Gaps"},
		{"negative gap", func(c *RuleConfig) { c.Gaps = []int{-1, 4} }, "Gaps[0]"},
		{"unordered gaps", func(c *RuleConfig) { c.Gaps = []int{8, 4} }, "Gaps"},
		{"repeated gap", func(c *RuleConfig) { c.Gaps = []int{4, 4} }, "Gaps"},
		{"missing code name", func(c *RuleConfig) { c.Code.Name = "" }, "Code.Name"},
		{"missing code size", func(c *RuleConfig) { c.Code.Size = nil }, "Code.Size"},
		{"negative code size", func(c *RuleConfig) { c.Code.Size = ptr(-3) }, "Code.Size"},
		{"missing luhn policy", func(c *RuleConfig) { c.LuhnCheck = nil }, "LuhnCheck"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := visaConfig()
			tt.mutate(&cfg)

			rule, err := NewRule(cfg)
			require.Error(t, err)
			assert.Nil(t, rule)
			assert.True(t, errors.Is(err, ErrConfiguration))

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestNewRule_ZeroValuesAreValid(t *testing.T) {
	cfg := visaConfig()
	cfg.Gaps = []int{}
	cfg.Code.Size = ptr(0)
	cfg.LuhnCheck = ptr(false)

	r, err := NewRule(cfg)
	require.NoError(t, err)
	assert.Empty(t, r.Gaps())
	assert.Equal(t, 0, r.SecurityCode().Size)
	assert.False(t, r.RequiresLuhn())
	assert.Equal(t, "4111111111111111", r.Format("4111111111111111"))
}

func TestNewRule_DoesNotAliasConfigSlices(t *testing.T) {
	cfg := visaConfig()
	r, err := NewRule(cfg)
	require.NoError(t, err)

	cfg.Gaps[0] = 1
	assert.Equal(t, []int{4, 8, 12}, r.Gaps())
}

func TestConfigurationError_Message(t *testing.T) {
	cfg := visaConfig()
	cfg.Patterns = []string{"55-51"}

	_, err := NewRule(cfg)
	require.Error(t, err)
	assert.Equal(t, `cardrules: network visa: Patterns: range "55-51": min greater than max`, err.Error())
	assert.ErrorIs(t, err, ErrInvalidRange)

	err = &ConfigurationError{Reason: "could not parse rule table"}
	assert.Equal(t, "cardrules: network <unnamed>: could not parse rule table", err.Error())
}

func TestLoadConfigs(t *testing.T) {
	input := `[
		{
			"niceType": "Test Card",
			"type": "test-card",
			"patterns": ["9", "900-905"],
			"gaps": [4, 8, 12],
			"lengths": ["16", "12-19"],
			"code": {"name": "CVV", "size": 3},
			"luhnCheck": false
		}
	]`

	configs, err := LoadConfigs(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, configs, 1)

	rs, err := NewRuleset(configs...)
	require.NoError(t, err)

	r, ok := rs.Rule("test-card")
	require.True(t, ok)
	assert.Equal(t, "Test Card", r.DisplayName())
	assert.Equal(t, []Pattern{Prefix("9"), mustRange(t, "900", "905")}, r.Patterns())
	assert.Equal(t, []Length{ExactLength(16), {Min: 12, Max: 19}}, r.Lengths())
	assert.False(t, r.RequiresLuhn())
}

func TestLoadConfigs_Errors(t *testing.T) {
	_, err := LoadConfigs(strings.NewReader(`{"not": "a list"}`))
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = LoadConfigs(strings.NewReader(`[{"niceType": "Visa", "unknown": 1}]`))
	assert.ErrorIs(t, err, ErrConfiguration)

	configs, err := LoadConfigs(strings.NewReader(`[{"niceType": "Visa", "type": "visa"}]`))
	require.NoError(t, err)
	_, err = NewRuleset(configs...)
	assert.ErrorIs(t, err, ErrConfiguration)

	// gaps may be empty but not absent
	configs, err = LoadConfigs(strings.NewReader(`[{
		"niceType": "Test Card", "type": "test-card", "patterns": ["9"],
		"lengths": ["16"], "code": {"name": "CVV", "size": 3}, "luhnCheck": true
	}]`))
	require.NoError(t, err)
	_, err = NewRuleset(configs...)
	assert.ErrorIs(t, err, ErrConfiguration)
}
