package cardrules

import (
	"fmt"
	"strings"
)

// TestCardNumber is the gateway sandbox number accepted without checks
// when a Validator is built WithTestNumbers(true).
const TestCardNumber = "4242424242424242"

// MatchResult names the winning network and the strength it won with.
type MatchResult struct {
	NetworkID string `json:"network_id"`
	Strength  int    `json:"strength"`
}

// Validator answers card-number questions against the allowed subset
// of a Ruleset. It is not safe for concurrent use; build one per
// validation context.
type Validator struct {
	rules            *Ruleset
	allowed          map[string]bool
	allowTestNumbers bool

	view []*NetworkRule // lazily resolved, nil when stale
}

type Option func(*Validator)

// WithAllowedNetworks restricts the validator to ids. An empty list
// keeps every known network.
func WithAllowedNetworks(ids ...string) Option {
	return func(v *Validator) {
		if len(ids) > 0 {
			v.SetAllowedNetworks(ids...)
		}
	}
}

// WithTestNumbers makes IsValid accept TestCardNumber unconditionally.
func WithTestNumbers(allow bool) Option {
	return func(v *Validator) {
		v.allowTestNumbers = allow
	}
}

func NewValidator(rs *Ruleset, opts ...Option) *Validator {
	v := &Validator{rules: rs}
	v.allowAll()
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Validator) allowAll() {
	v.allowed = make(map[string]bool, v.rules.Len())
	for _, id := range v.rules.IDs() {
		v.allowed[id] = true
	}
	v.view = nil
}

// SetAllowedNetworks replaces the allowed subset with the intersection
// of ids and the Ruleset's networks. Unknown ids are dropped.
func (v *Validator) SetAllowedNetworks(ids ...string) {
	v.allowed = make(map[string]bool, len(ids))
	for _, id := range ids {
		if v.rules.Has(id) {
			v.allowed[id] = true
		}
	}
	v.view = nil
}

// AllowedNetworks returns the allowed ids in registration order.
func (v *Validator) AllowedNetworks() []string {
	rules := v.allowedRules()
	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.id
	}
	return ids
}

func (v *Validator) allowedRules() []*NetworkRule {
	if v.view != nil {
		return v.view
	}
	view := make([]*NetworkRule, 0, len(v.allowed))
	for _, r := range v.rules.rules {
		if v.allowed[r.id] {
			view = append(view, r)
		}
	}
	v.view = view
	return view
}

// IsValid reports whether any allowed network matches number.
func (v *Validator) IsValid(number string) bool {
	if v.allowTestNumbers && number == TestCardNumber {
		return true
	}
	for _, r := range v.allowedRules() {
		if r.Matches(number) {
			return true
		}
	}
	return false
}

// BestMatch returns the matching allowed rule with the strongest
// pattern match. On equal strength the earlier registered rule wins.
func (v *Validator) BestMatch(number string) (*NetworkRule, bool) {
	var best *NetworkRule
	bestStrength := 0
	for _, r := range v.allowedRules() {
		if !r.Matches(number) {
			continue
		}
		if s := r.MatchStrength(number); s > bestStrength {
			best, bestStrength = r, s
		}
	}
	return best, best != nil
}

func (v *Validator) Match(number string) (MatchResult, bool) {
	r, ok := v.BestMatch(number)
	if !ok {
		return MatchResult{}, false
	}
	return MatchResult{NetworkID: r.id, Strength: r.MatchStrength(number)}, true
}

// IsNetwork reports whether the best match for number is networkID.
func (v *Validator) IsNetwork(networkID, number string) bool {
	r, ok := v.BestMatch(number)
	return ok && r.id == networkID
}

// Format formats number with the gaps of its best matching network.
func (v *Validator) Format(number string) (string, error) {
	r, ok := v.BestMatch(number)
	if !ok {
		return "", ErrNoMatchingNetwork
	}
	return r.Format(number), nil
}

// Is resolves alias ("Visa", "americanExpress", "diners-club") to a
// network and reports IsNetwork for it.
func (v *Validator) Is(alias, number string) (bool, error) {
	id, ok := v.rules.ResolveAlias(alias)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownNetworkAlias, alias)
	}
	return v.IsNetwork(id, number), nil
}

// Dispatch evaluates a method-style query such as
// Dispatch("isAmericanExpress", number).
func (v *Validator) Dispatch(method string, args ...string) (bool, error) {
	name, found := strings.CutPrefix(method, "is")
	if !found {
		return false, fmt.Errorf("%w: %q", ErrUnknownNetworkAlias, method)
	}
	if len(args) == 0 {
		return false, ErrMissingArgument
	}
	return v.Is(name, args[0])
}
