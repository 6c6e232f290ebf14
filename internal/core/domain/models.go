package domain

import (
	"time"

	"github.com/google/uuid"
)

// CardCheck is one recorded validation attempt. It never holds the
// full card number.
type CardCheck struct {
	ID           uuid.UUID `json:"id"`
	RequestID    string    `json:"request_id"`
	MaskedNumber string    `json:"masked_number"`
	NetworkID    string    `json:"network_id,omitempty"`
	Valid        bool      `json:"valid"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCardCheck masks number and stamps the check with a fresh id.
func NewCardCheck(requestID, number, networkID string, valid bool) CardCheck {
	return CardCheck{
		ID:           uuid.New(),
		RequestID:    requestID,
		MaskedNumber: MaskAllButFirstAndLastFour(number),
		NetworkID:    networkID,
		Valid:        valid,
		CreatedAt:    time.Now().UTC(),
	}
}
