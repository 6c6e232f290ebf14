package cardrules

import (
	"fmt"
	"strings"
	"unicode"
)

// Ruleset is an immutable, registration-ordered table of network rules.
// It is safe for concurrent use.
type Ruleset struct {
	rules   []*NetworkRule
	byID    map[string]*NetworkRule
	aliases map[string]string
}

// NewRuleset builds every config in order. Any invalid rule, duplicate
// network id or clashing alias fails the whole build.
func NewRuleset(configs ...RuleConfig) (*Ruleset, error) {
	rs := &Ruleset{
		rules:   make([]*NetworkRule, 0, len(configs)),
		byID:    make(map[string]*NetworkRule, len(configs)),
		aliases: make(map[string]string, 2*len(configs)),
	}

	for _, cfg := range configs {
		rule, err := NewRule(cfg)
		if err != nil {
			return nil, err
		}
		if _, exists := rs.byID[rule.id]; exists {
			return nil, configError(rule.id, "NetworkID", "duplicate network id")
		}

		for _, name := range []string{rule.id, rule.displayName} {
			alias := NormalizeAlias(name)
			if alias == "" {
				return nil, configError(rule.id, "", "%q normalizes to an empty alias", name)
			}
			if owner, taken := rs.aliases[alias]; taken && owner != rule.id {
				return nil, configError(rule.id, "", "alias %q already used by %s", alias, owner)
			}
			rs.aliases[alias] = rule.id
		}

		rs.rules = append(rs.rules, rule)
		rs.byID[rule.id] = rule
	}

	return rs, nil
}

// DefaultRuleset builds the predefined twelve-network table.
func DefaultRuleset() (*Ruleset, error) {
	rs, err := NewRuleset(DefaultConfigs()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build default ruleset: %w", err)
	}
	return rs, nil
}

// Rules returns the rules in registration order.
func (rs *Ruleset) Rules() []*NetworkRule {
	return append([]*NetworkRule(nil), rs.rules...)
}

// IDs returns the network ids in registration order.
func (rs *Ruleset) IDs() []string {
	ids := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		ids[i] = r.id
	}
	return ids
}

func (rs *Ruleset) Rule(id string) (*NetworkRule, bool) {
	r, ok := rs.byID[id]
	return r, ok
}

func (rs *Ruleset) Has(id string) bool {
	_, ok := rs.byID[id]
	return ok
}

func (rs *Ruleset) Len() int { return len(rs.rules) }

// ResolveAlias maps a display name, id or any spelling of them that
// normalizes the same ("American Express", "americanExpress") to a
// network id.
func (rs *Ruleset) ResolveAlias(name string) (string, bool) {
	id, ok := rs.aliases[NormalizeAlias(name)]
	return id, ok
}

// NormalizeAlias lower-cases name and drops everything that is not a
// letter or digit.
func NormalizeAlias(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
