package response

import "cinema-manager/internal/engine"

type PriceResponse struct {
	Base             string `json:"base"`
	PremiumSurcharge string `json:"premium_surcharge"`
	ThreeDSurcharge  string `json:"three_d_surcharge"`
	ReducedBase      string `json:"reduced_base"`
}

func PricesToResponse(p engine.PriceTable) PriceResponse {
	return PriceResponse{
		Base:             engine.FormatCost(p.Base),
		PremiumSurcharge: engine.FormatCost(p.PremiumSurcharge),
		ThreeDSurcharge:  engine.FormatCost(p.ThreeDSurcharge),
		ReducedBase:      engine.FormatCost(p.ReducedBase),
	}
}
