package models

import "time"

// Payment is a charge scheduled by a community admin for a house member.
type Payment struct {
	ID          int64
	PaymentID   string
	Charge      float64
	Type        string
	Description string
	Recurring   bool
	DueDate     time.Time
	AdminID     string
	MemberID    string
}
