package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nesthome/nesthome-web/internal/core/domain"
	"github.com/nesthome/nesthome-web/internal/core/ports"
)

// ContactRepository implements ports.ContactRepository using MongoDB.
type ContactRepository struct {
	db *mongo.Database
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *mongo.Database) ports.ContactRepository {
	return &ContactRepository{db: db}
}

// Insert persists a contact message to the contact_messages collection.
func (r *ContactRepository) Insert(ctx context.Context, msg *domain.ContactMessage) error {
	doc := bson.M{
		"name":        msg.Name,
		"email":       msg.Email,
		"subject":     msg.Subject,
		"message":     msg.Message,
		"received_at": msg.ReceivedAt.UTC(),
	}

	_, err := r.db.Collection("contact_messages").InsertOne(ctx, doc)
	return err
}
