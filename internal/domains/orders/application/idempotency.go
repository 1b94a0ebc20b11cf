package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	ordertypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application/types"
)

type normalizedCommitInput struct {
	Items  []normalizedLine `json:"items"`
	Total  string           `json:"total"`
	Status string           `json:"status"`
}

type normalizedLine struct {
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	UnitPrice     string `json:"unitPrice"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"paymentMethod"`
}

// FingerprintCommit builds a deterministic hash of the checkout payload (excluding the idempotency key).
func FingerprintCommit(input ordertypes.CommitOrderInput) (string, error) {
	payload, err := json.Marshal(normalizeCommitInput(input))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func normalizeCommitInput(input ordertypes.CommitOrderInput) normalizedCommitInput {
	items := make([]normalizedLine, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, normalizedLine{
			ProductID:     strings.TrimSpace(item.ProductID),
			ProductName:   strings.TrimSpace(item.ProductName),
			UnitPrice:     item.UnitPrice.Round(2).StringFixed(2),
			Quantity:      item.Quantity,
			PaymentMethod: strings.ToLower(strings.TrimSpace(item.PaymentMethod)),
		})
	}
	return normalizedCommitInput{
		Items:  items,
		Total:  input.Total.Round(2).StringFixed(2),
		Status: strings.ToLower(strings.TrimSpace(input.Status)),
	}
}
