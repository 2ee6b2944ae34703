package models

import "time"

const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCompleted = "Completed"
	BookingStatusCancelled = "Cancelled"
)

type Booking struct {
	ID             int64     `json:"id"`
	CustomerName   string    `json:"customer_name"`
	Phone          string    `json:"phone"`
	PickupLocation string    `json:"pickup_location"`
	DropLocation   string    `json:"drop_location"`
	VehicleType    string    `json:"vehicle_type"`
	DateTime       time.Time `json:"date_time"`
	Status         string    `json:"status"`
	SpecialNotes   string    `json:"special_notes"`
	PrivacyMode    bool      `json:"privacy_mode"`
	IsCompleted    bool      `json:"is_completed"`
	DriverID       *int64    `json:"driver_id"`
}

// ValidBookingStatus reports whether s is one of the four booking states.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}
