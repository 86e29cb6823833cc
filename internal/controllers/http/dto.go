package http

// AmountRequest carries the optional partial amount (in reais) for capture
// and cancel operations. Absent means full amount.
type AmountRequest struct {
	Amount *float64 `json:"valor"`
}
