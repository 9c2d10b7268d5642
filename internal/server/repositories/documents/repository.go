package documents

import (
	"context"

	"github.com/myhome-soft/myhome/internal/server/models"
)

// Repository stores member document metadata. Each member has at most one
// document; Upsert replaces the previous row.
type Repository interface {
	Upsert(ctx context.Context, doc *models.MemberDocument) (*models.MemberDocument, error)
	FindByMember(ctx context.Context, memberID string) (*models.MemberDocument, error)
	Delete(ctx context.Context, memberID string) error
}
