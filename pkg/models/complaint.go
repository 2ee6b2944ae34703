package models

import "time"

const (
	ComplaintStatusPending   = "Pending"
	ComplaintStatusResolved  = "Resolved"
	ComplaintStatusDismissed = "Dismissed"
)

type Complaint struct {
	ID        int64     `json:"id"`
	BookingID *int64    `json:"booking_id"`
	DriverID  int64     `json:"driver_id"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	DateTime  time.Time `json:"date_time"`
}
