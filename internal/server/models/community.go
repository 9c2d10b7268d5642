package models

// Community is the top-level tenant unit. Admin membership is kept in a
// separate join table; admins are Users.
type Community struct {
	ID          int64
	CommunityID string
	Name        string
	District    string
}

// CommunityHouse is a house belonging to a community.
type CommunityHouse struct {
	ID          int64
	HouseID     string
	CommunityID string
	Name        string
}

// HouseMember is a resident registered in a house.
type HouseMember struct {
	ID       int64
	MemberID string
	HouseID  string
	Name     string
}
