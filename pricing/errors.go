package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFullDiscount is returned when a stored line carries a 100% discount:
// the pre-discount price cannot be reconstructed from it.
var ErrFullDiscount = errors.New("cannot reconstruct price from a 100% discount")

// ValidationError represents a field-level validation failure. It carries a
// named field plus a human message so it can be surfaced next to the
// relevant input.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StockExceededError reports every preparation line whose actual quantity
// exceeds the product's available stock. It blocks submission entirely.
type StockExceededError struct {
	Lines []StockExceededLine `json:"lines"`
}

// StockExceededLine identifies one offending line
type StockExceededLine struct {
	ProductID      int64 `json:"productId"`
	Requested      int   `json:"requested"`
	AvailableStock int   `json:"availableStock"`
}

func (e *StockExceededError) Error() string {
	parts := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		parts = append(parts, fmt.Sprintf("product %d: requested %d, available %d", l.ProductID, l.Requested, l.AvailableStock))
	}
	return "stock exceeded: " + strings.Join(parts, "; ")
}
