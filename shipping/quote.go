package shipping

import (
	"errors"
	"math"
	"strings"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
)

var ErrInvalidCEP = errors.New("invalid cep")

// DefaultItemWeight is assumed (in kg) when a product carries no weight.
const DefaultItemWeight = 0.3

const baseCost = 12.0
const costPerKg = 15.0

type QuoteItem struct {
	Quantity int      `json:"quantity"`
	Weight   *float64 `json:"weight"`
}

// Normalize strips everything but digits from a CEP. The result is only
// usable when it has exactly 8 digits.
func Normalize(cep string) string {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TotalWeight(items []QuoteItem) float64 {
	total := 0.0
	for _, item := range items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		weight := DefaultItemWeight
		if item.Weight != nil && *item.Weight > 0 {
			weight = *item.Weight
		}
		total += weight * float64(qty)
	}
	return total
}

func simulateCarrierPrice(weight, speedMultiplier float64) float64 {
	return round2((baseCost + weight*costPerKg) * speedMultiplier)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Quote derives the fixed three-option carrier menu for a destination and
// parcel weight. Pure function of its inputs: the same cep and items always
// produce the same option ids and prices, which is what lets the draft
// builder re-validate a client-submitted choice without a stored quote.
func Quote(cep string, items []QuoteItem) ([]model.ShippingOption, error) {
	normalized := Normalize(cep)
	if len(normalized) != 8 {
		return nil, ErrInvalidCEP
	}

	weight := TotalWeight(items)

	return []model.ShippingOption{
		{
			ServiceCode: "pac-" + normalized,
			Label:       "PAC Econômico",
			Provider:    "Correios PAC",
			EtaDays:     7,
			Price:       simulateCarrierPrice(weight, 1),
		},
		{
			ServiceCode: "sedex-" + normalized,
			Label:       "Sedex Rápido",
			Provider:    "Correios SEDEX",
			EtaDays:     3,
			Price:       simulateCarrierPrice(weight, 1.45),
		},
		{
			ServiceCode: "logistica-" + normalized,
			Label:       "Logística Express",
			Provider:    "Parceiro logístico",
			EtaDays:     5,
			Price:       simulateCarrierPrice(weight, 1.2),
		},
	}, nil
}
