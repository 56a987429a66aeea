package dto

// PriceOption is one purchasable variant of a service, derived from its
// session types. Index is 1-based to match the host's variant numbering.
type PriceOption struct {
	Index    int     `json:"index"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Duration int     `json:"duration"`
}

type PricesResponse struct {
	ServiceID string        `json:"service_id"`
	Options   []PriceOption `json:"options"`
}
