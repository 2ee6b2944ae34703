package models

type Vehicle struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"` // Sedan, SUV, Auto
	PricePerKm float64 `json:"price_per_km"`
	BaseFare   float64 `json:"base_fare"`
	ImageURL   *string `json:"image_url"`
}
