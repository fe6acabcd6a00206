package request

// PriceRequest carries decimal amounts as strings, e.g. "8" or "7.50".
type PriceRequest struct {
	Base             string `json:"base" validate:"required,decimal"`
	PremiumSurcharge string `json:"premium_surcharge" validate:"required,decimal"`
	ThreeDSurcharge  string `json:"three_d_surcharge" validate:"required,decimal"`
	ReducedBase      string `json:"reduced_base" validate:"required,decimal"`
}
