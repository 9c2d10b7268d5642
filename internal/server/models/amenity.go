package models

import "time"

// Amenity is a bookable facility offered by a community.
type Amenity struct {
	ID          int64
	AmenityID   string
	CommunityID string
	Name        string
	Description string
	Price       float64
}

// AmenityBooking reserves an amenity for a house member over a time range.
type AmenityBooking struct {
	ID        int64
	BookingID string
	AmenityID string
	MemberID  string
	StartDate time.Time
	EndDate   time.Time
}
