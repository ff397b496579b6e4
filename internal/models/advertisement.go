package models

import "time"

type Advertisement struct {
	ID           int64     `json:"id"`
	VendorID     int       `json:"vendor_id"`
	Title        string    `json:"title"`
	ServiceType  string    `json:"service_type"`
	Description  string    `json:"description"`
	Price        string    `json:"price,omitempty"`
	Location     string    `json:"location,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
