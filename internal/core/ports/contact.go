package ports

import (
	"context"

	"github.com/nesthome/nesthome-web/internal/core/domain"
)

// ContactRepository persists contact-form leads.
type ContactRepository interface {
	Insert(ctx context.Context, msg *domain.ContactMessage) error
}
