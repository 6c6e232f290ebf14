package handler

import (
	"fmt"

	"github.com/ShamarKellman/power-tranz/internal/core/cardrules"
)

// NetworkPolicy is the service-wide view of which networks are
// accepted. Requests can narrow it but never widen it.
type NetworkPolicy struct {
	Rules            *cardrules.Ruleset
	AllowedNetworks  []string // empty means every network in Rules
	AllowTestNumbers bool
}

// Validator builds a per-request validator. requested holds network
// ids or aliases ("Visa", "american-express"); unknown ones are an
// error.
func (p NetworkPolicy) Validator(requested []string) (*cardrules.Validator, error) {
	v := cardrules.NewValidator(p.Rules,
		cardrules.WithAllowedNetworks(p.AllowedNetworks...),
		cardrules.WithTestNumbers(p.AllowTestNumbers),
	)
	if len(requested) == 0 {
		return v, nil
	}

	base := make(map[string]bool)
	for _, id := range v.AllowedNetworks() {
		base[id] = true
	}

	ids := make([]string, 0, len(requested))
	for _, alias := range requested {
		id, ok := p.Rules.ResolveAlias(alias)
		if !ok {
			return nil, fmt.Errorf("unknown network '%s'", alias)
		}
		if base[id] {
			ids = append(ids, id)
		}
	}
	v.SetAllowedNetworks(ids...)
	return v, nil
}
