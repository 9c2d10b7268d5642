package models

import "time"

// MemberDocument is the metadata row for a house member's document. The
// content itself lives in object storage under StorageKey; clients upload
// and download it through presigned URLs. One document per member.
type MemberDocument struct {
	ID         int64
	MemberID   string
	Filename   string
	StorageKey string
	UploadedAt time.Time
}
