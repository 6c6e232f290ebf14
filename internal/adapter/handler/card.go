package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/ShamarKellman/power-tranz/internal/adapter/middleware"
	"github.com/ShamarKellman/power-tranz/internal/core/cardrules"
	"github.com/ShamarKellman/power-tranz/internal/core/domain"
)

// CheckRecorder persists card checks. *storage.CheckRepository
// implements it.
type CheckRecorder interface {
	Record(ctx context.Context, check domain.CardCheck) error
	Recent(ctx context.Context, limit int) ([]domain.CardCheck, error)
}

type CardHandler struct {
	Policy NetworkPolicy
	Repo   CheckRecorder // nil when history is disabled
}

type ValidateRequest struct {
	Number       string   `json:"number" validate:"required,max=64"`
	SecurityCode string   `json:"security_code" validate:"omitempty,numeric,max=4"`
	Networks     []string `json:"networks"`
}

type NetworkMatch struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Strength int    `json:"strength"`
}

type ValidateResponse struct {
	Valid             bool          `json:"valid"`
	Network           *NetworkMatch `json:"network,omitempty"`
	Formatted         string        `json:"formatted,omitempty"`
	Masked            string        `json:"masked"`
	SecurityCodeValid *bool         `json:"security_code_valid,omitempty"`
}

func (h *CardHandler) ValidateCard(c *fiber.Ctx) error {
	var req ValidateRequest
	if handled, err := parseBody(c, &req); handled {
		return err
	}

	v, err := h.Policy.Validator(req.Networks)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	number := domain.StripNonDigits(req.Number)
	res := ValidateResponse{
		Valid:  v.IsValid(number),
		Masked: domain.MaskAllButFirstAndLastFour(number),
	}

	if rule, ok := v.BestMatch(number); ok {
		res.Network = &NetworkMatch{
			ID:       rule.ID(),
			Name:     rule.DisplayName(),
			Strength: rule.MatchStrength(number),
		}
		res.Formatted = rule.Format(number)
		if req.SecurityCode != "" {
			codeOK := rule.MatchesSecurityCode(req.SecurityCode)
			res.SecurityCodeValid = &codeOK
		}
	}

	networkID := ""
	if res.Network != nil {
		networkID = res.Network.ID
	}
	h.record(c, number, networkID, res.Valid)

	return c.JSON(res)
}

func (h *CardHandler) record(c *fiber.Ctx, number, networkID string, valid bool) {
	if h.Repo == nil {
		return
	}
	check := domain.NewCardCheck(middleware.GetRequestID(c), number, networkID, valid)
	if err := h.Repo.Record(c.Context(), check); err != nil {
		// History is best effort; the caller still gets the verdict.
		slog.Error("❌ Failed to record card check", "error", err, "card", check.MaskedNumber)
	}
}

type NetworkDescriptor struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Patterns     []string               `json:"patterns"`
	Lengths      []string               `json:"lengths"`
	Gaps         []int                  `json:"gaps"`
	SecurityCode cardrules.SecurityCode `json:"code"`
	LuhnCheck    bool                   `json:"luhn_check"`
	Allowed      bool                   `json:"allowed"`
}

// ListNetworks describes the rule table and which networks the
// service accepts.
func (h *CardHandler) ListNetworks(c *fiber.Ctx) error {
	v, err := h.Policy.Validator(nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load networks"})
	}
	allowed := make(map[string]bool)
	for _, id := range v.AllowedNetworks() {
		allowed[id] = true
	}

	rules := h.Policy.Rules.Rules()
	out := make([]NetworkDescriptor, 0, len(rules))
	for _, r := range rules {
		d := NetworkDescriptor{
			ID:           r.ID(),
			Name:         r.DisplayName(),
			Gaps:         r.Gaps(),
			SecurityCode: r.SecurityCode(),
			LuhnCheck:    r.RequiresLuhn(),
			Allowed:      allowed[r.ID()],
		}
		for _, p := range r.Patterns() {
			d.Patterns = append(d.Patterns, p.String())
		}
		for _, l := range r.Lengths() {
			d.Lengths = append(d.Lengths, l.String())
		}
		out = append(out, d)
	}

	return c.JSON(fiber.Map{"networks": out})
}

// GetHistory lists recent checks, newest first.
func (h *CardHandler) GetHistory(c *fiber.Ctx) error {
	if h.Repo == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Check history is disabled"})
	}

	limit := c.QueryInt("limit", 20)
	limit = max(1, min(limit, 100))

	checks, err := h.Repo.Recent(c.Context(), limit)
	if err != nil {
		slog.Error("❌ Failed to fetch card checks", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch history"})
	}

	return c.JSON(fiber.Map{"checks": checks})
}
