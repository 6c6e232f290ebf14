package cardrules

const (
	Visa            = "visa"
	Mastercard      = "mastercard"
	AmericanExpress = "american-express"
	DinersClub      = "diners-club"
	Discover        = "discover"
	JCB             = "jcb"
	UnionPay        = "unionpay"
	Maestro         = "maestro"
	Elo             = "elo"
	Mir             = "mir"
	Hiper           = "hiper"
	Hipercard       = "hipercard"
)

func ptr[T any](v T) *T { return &v }

// standardGaps groups a 16 digit number in fours. Each call returns a
// new slice so configs never share a backing array.
func standardGaps() []int { return []int{4, 8, 12} }

// DefaultConfigs returns a fresh copy of the predefined network table,
// in registration order.
func DefaultConfigs() []RuleConfig {
	return []RuleConfig{
		{
			DisplayName: "Visa",
			NetworkID:   Visa,
			Patterns:    []string{"4"},
			Gaps:        standardGaps(),
			Lengths:     []string{"16", "18", "19"},
			Code:        SecurityCodeConfig{Name: "CVV", Size: ptr(3)},
			LuhnCheck:   ptr(true),
		},
		{
			DisplayName: "Mastercard",
			NetworkID:   Mastercard,
			Patterns:    []string{"51-55", "2221-2229", "223-229", "23-26", "270-271", "2720"},
			Gaps:        standardGaps(),
			Lengths:     []string{"16"},
			Code:        SecurityCodeConfig{Name: "CVC", Size: ptr(3)},
			LuhnCheck:   ptr(true),
		},
		{
			DisplayName: "American Express",
			NetworkID:   AmericanExpress,
			Patterns:    []string{"34", "37"},
			Gaps:        []int{4, 10},
			Lengths:     []string{"15"},
			Code:        SecurityCodeConfig{Name: "CID", Size: ptr(4)},
			LuhnCheck:   ptr(true),
		},
		{
			DisplayName: "Diners Club",
			NetworkID:   DinersClub,
			Patterns:    []string{"300-305", "36", "38", "39"},
			Gaps:        []int{4, 10},
			Lengths:     []string{"14", "16", "19"},
			Code:        SecurityCodeConfig{Name: "CVV", Size: ptr(3)},
			LuhnCheck:   ptr(true),
		},
		{
			DisplayName: "Discover",
			NetworkID:   Discover,
			Patterns:    []string{"6011", "644-649", "65"},
			Gaps:        standardGaps(),
			Lengths:     []string{"16", "19"},
			Code:        SecurityCodeConfig{Name: "CID", Size: ptr(3)},
			LuhnCheck:   ptr(true),
		},
		{
			DisplayName: "JCB",
			NetworkID:   JCB,
			Patterns:    []string{"2131", "1800", "3528-3589"},
			Gaps:        standardGaps(),
			Lengths:     []string{"16", "17", "18", "19"},
			Code:        SecurityCodeConfig{Name: "CVV", Size: ptr(3)},
			LuhnCheck:   ptr(true),
		},
		{
			DisplayName: "UnionPay",
			NetworkID:   UnionPay,
			Patterns: []string{
				"620", "624-626", "62100-62182", "62184-62187", "62185-62197",
				"62200-62205", "622010-622999", "622018", "622019-622999",
				"62207-62209", "622126-622925", "623-626", "6270", "6272", "6276",
				"627700-627779", "627781-627799", "6282-6289", "6291", "6292",
				"810", "8110-8131", "8132-8151", "8152-8163", "8164-8171",
			},
			Gaps:      standardGaps(),
			Lengths:   []string{"14", "15", "16", "17", "18", "19"},
			Code:      SecurityCodeConfig{Name: "CVN", Size: ptr(3)},
			LuhnCheck: ptr(true),
		},
		{
			DisplayName: "Maestro",
			NetworkID:   Maestro,
			Patterns: []string{
				"493698", "500000-504174", "504176-506698", "506779-508999",
				"56-59", "63", "67", "6",
			},
			Gaps:      standardGaps(),
			Lengths:   []string{"12-19"},
			Code:      SecurityCodeConfig{Name: "CVC", Size: ptr(3)},
			LuhnCheck: ptr(true),
		},
		{
			DisplayName: "Elo",
			NetworkID:   Elo,
			Patterns: []string{
				"401178", "401179", "438935", "457631", "457632", "431274",
				"451416", "457393", "504175", "506699-506778", "509000-509999",
				"627780", "636297", "636368", "650031-650033", "650035-650051",
				"650405-650439", "650485-650538", "650541-650598", "650700-650718",
				"650720-650727", "650901-650978", "651652-651679", "655000-655019",
				"655021-655058",
			},
			Gaps:      standardGaps(),
			Lengths:   []string{"16"},
			Code:      SecurityCodeConfig{Name: "CVE", Size: ptr(3)},
			LuhnCheck: ptr(true),
		},
		{
			DisplayName: "Mir",
			NetworkID:   Mir,
			Patterns:    []string{"2200-2204"},
			Gaps:        standardGaps(),
			Lengths:     []string{"16", "17", "18", "19"},
			Code:        SecurityCodeConfig{Name: "CVP2", Size: ptr(3)},
			LuhnCheck:   ptr(true),
		},
		{
			DisplayName: "Hiper",
			NetworkID:   Hiper,
			Patterns: []string{
				"637095", "63737423", "63743358", "637568", "637599", "637609", "637612",
			},
			Gaps:      standardGaps(),
			Lengths:   []string{"16"},
			Code:      SecurityCodeConfig{Name: "CVC", Size: ptr(3)},
			LuhnCheck: ptr(true),
		},
		{
			DisplayName: "Hipercard",
			NetworkID:   Hipercard,
			Patterns:    []string{"606282"},
			Gaps:        standardGaps(),
			Lengths:     []string{"16"},
			Code:        SecurityCodeConfig{Name: "CVC", Size: ptr(3)},
			LuhnCheck:   ptr(true),
		},
	}
}
