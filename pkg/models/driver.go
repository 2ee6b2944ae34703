package models

// Driver is never hard-deleted; banning keeps the record and its
// complaint history. IsBanned implies IsActive == false.
type Driver struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	VehicleNumber     string  `json:"vehicle_number"`
	PhotoURL          *string `json:"photo_url"`
	IsActive          bool    `json:"is_active"`
	AgreementAccepted bool    `json:"agreement_accepted"`
	IsBanned          bool    `json:"is_banned"`
	ComplaintCount    int     `json:"complaint_count"`
}
