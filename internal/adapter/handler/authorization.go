package handler

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ShamarKellman/power-tranz/internal/core/domain"
)

// AuthorizationHandler checks a card before it is sent to the gateway
// and builds the gateway card source.
type AuthorizationHandler struct {
	Policy NetworkPolicy
	Cards  *CardHandler // optional, used to record checks
}

type CardData struct {
	Number      string `json:"number" validate:"required,max=64"`
	CVV         string `json:"cvv" validate:"required,numeric,min=3,max=4"`
	ExpiryMonth string `json:"expiry_month" validate:"required,numeric,min=1,max=2"`
	ExpiryYear  string `json:"expiry_year" validate:"required,numeric,len=2|len=4"`
	Name        string `json:"name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

type AuthorizationRequest struct {
	Card           CardData `json:"card" validate:"required"`
	ValidCardTypes []string `json:"valid_card_types"`
}

// CardSource is the card block of a gateway authorization.
type CardSource struct {
	CardPan        string `json:"CardPan"`
	CardCvv        string `json:"CardCvv"`
	CardExpiration string `json:"CardExpiration"`
	CardholderName string `json:"CardholderName"`
}

type AuthorizationResponse struct {
	TransactionIdentifier string     `json:"TransactionIdentifier"`
	NetworkID             string     `json:"network_id,omitempty"`
	Source                CardSource `json:"Source"`
}

func (h *AuthorizationHandler) Authorize(c *fiber.Ctx) error {
	var req AuthorizationRequest
	if handled, err := parseBody(c, &req); handled {
		return err
	}

	v, err := h.Policy.Validator(req.ValidCardTypes)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	number := domain.StripNonDigits(req.Card.Number)
	valid := v.IsValid(number)
	networkID := ""
	if rule, ok := v.BestMatch(number); ok {
		networkID = rule.ID()
		if valid && !rule.MatchesSecurityCode(req.Card.CVV) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Invalid Security Code Supplied"})
		}
	}
	if h.Cards != nil {
		h.Cards.record(c, number, networkID, valid)
	}
	if !valid {
		slog.Info("Card rejected", "card", domain.MaskAllButFirstAndLastFour(number))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Invalid Credit Card Number Supplied"})
	}

	expiry, err := CardExpiration(req.Card.ExpiryMonth, req.Card.ExpiryYear)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(AuthorizationResponse{
		TransactionIdentifier: uuid.NewString(),
		NetworkID:             networkID,
		Source: CardSource{
			CardPan:        number,
			CardCvv:        req.Card.CVV,
			CardExpiration: expiry,
			CardholderName: req.Card.holder(),
		},
	})
}

func (d CardData) holder() string {
	if d.Name != "" {
		return d.Name
	}
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// CardExpiration renders an expiry as YYMM. Four digit years keep
// their last two digits.
func CardExpiration(month, year string) (string, error) {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return "", fmt.Errorf("invalid expiry month '%s'", month)
	}
	if len(year) == 4 {
		year = year[2:]
	}
	y, err := strconv.Atoi(year)
	if err != nil || len(year) != 2 {
		return "", fmt.Errorf("invalid expiry year '%s'", year)
	}
	return fmt.Sprintf("%02d%02d", y, m), nil
}
