package cardrules

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RuleConfig is the declarative form of a NetworkRule. Pattern and
// length entries are digit strings ("4", "16") or inclusive ranges
// written as "min-max" ("2221-2229", "12-19").
type RuleConfig struct {
	DisplayName string             `json:"niceType" validate:"required"`
	NetworkID   string             `json:"type" validate:"required"`
	Patterns    []string           `json:"patterns" validate:"required,min=1,dive,digitspan"`
	Gaps        []int              `json:"gaps" validate:"required,dive,min=0"`
	Lengths     []string           `json:"lengths" validate:"required,min=1,dive,digitspan"`
	Code        SecurityCodeConfig `json:"code"`
	LuhnCheck   *bool              `json:"luhnCheck" validate:"required"`
}

type SecurityCodeConfig struct {
	Name string `json:"name" validate:"required"`
	Size *int   `json:"size" validate:"required,min=0"`
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("digitspan", func(fl validator.FieldLevel) bool {
		_, _, ok := splitSpan(fl.Field().String())
		return ok
	}); err != nil {
		panic(err)
	}
	return v
}

// splitSpan splits "n" or "lo-hi" into digit-string bounds.
func splitSpan(s string) (lo, hi string, ok bool) {
	lo, hi, found := strings.Cut(s, "-")
	if !found {
		hi = lo
	}
	return lo, hi, isDigits(lo) && isDigits(hi)
}

// NewRule validates cfg and builds the immutable rule it describes.
func NewRule(cfg RuleConfig) (*NetworkRule, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, translateValidationError(cfg.NetworkID, err)
	}

	rule := &NetworkRule{
		displayName:  cfg.DisplayName,
		id:           cfg.NetworkID,
		code:         SecurityCode{Name: cfg.Code.Name, Size: *cfg.Code.Size},
		requiresLuhn: *cfg.LuhnCheck,
	}

	for _, entry := range cfg.Patterns {
		lo, hi, _ := splitSpan(entry)
		if !strings.Contains(entry, "-") {
			rule.patterns = append(rule.patterns, Prefix(lo))
			continue
		}
		p, err := Range(lo, hi)
		if err != nil {
			return nil, rangeError(cfg.NetworkID, "Patterns", entry, err)
		}
		rule.patterns = append(rule.patterns, p)
	}

	for _, entry := range cfg.Lengths {
		lo, hi, _ := splitSpan(entry)
		shortest, errLo := strconv.Atoi(lo)
		longest, errHi := strconv.Atoi(hi)
		if errLo != nil || errHi != nil {
			return nil, configError(cfg.NetworkID, "Lengths", "length %q out of bounds", entry)
		}
		l, err := LengthRange(shortest, longest)
		if err != nil {
			return nil, rangeError(cfg.NetworkID, "Lengths", entry, err)
		}
		rule.lengths = append(rule.lengths, l)
	}

	for i, gap := range cfg.Gaps {
		if i > 0 && gap <= cfg.Gaps[i-1] {
			return nil, configError(cfg.NetworkID, "Gaps", "gaps must be strictly ascending, got %v", cfg.Gaps)
		}
	}
	rule.gaps = append([]int(nil), cfg.Gaps...)

	return rule, nil
}

func rangeError(id, field, entry string, err error) *ConfigurationError {
	cfgErr := configError(id, field, "range %q: %s", entry,
		strings.TrimPrefix(err.Error(), ErrInvalidRange.Error()+": "))
	cfgErr.Err = err
	return cfgErr
}

// LoadConfigs decodes a JSON array of rule configurations.
// Validation happens later in NewRule / NewRuleset.
func LoadConfigs(r io.Reader) ([]RuleConfig, error) {
	var configs []RuleConfig
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&configs); err != nil {
		return nil, &ConfigurationError{Reason: "could not parse rule table", Err: err}
	}
	return configs, nil
}

func translateValidationError(id string, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return &ConfigurationError{NetworkID: id, Reason: "invalid rule", Err: err}
	}

	fe := validationErrors[0]
	field := strings.TrimPrefix(fe.Namespace(), "RuleConfig.")

	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			reason = fmt.Sprintf("must have at least %s entries", fe.Param())
		} else {
			reason = fmt.Sprintf("must be at least %s", fe.Param())
		}
	case "digitspan":
		reason = fmt.Sprintf("%v is not a digit string or digit range", fe.Value())
	default:
		reason = fmt.Sprintf("failed '%s' validation", fe.Tag())
	}

	return &ConfigurationError{NetworkID: id, Field: field, Reason: reason, Err: err}
}
