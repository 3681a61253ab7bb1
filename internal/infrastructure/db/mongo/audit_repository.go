package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zeronotes/secure-notes/internal/core/ports"
)

const auditCollection = "audit_events"

// AuditRepository persists audit trail entries.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

func (r *AuditRepository) Insert(ctx context.Context, event ports.AuditEvent) error {
	doc := bson.M{
		"username": event.Username,
		"action":   event.Action,
		"result":   event.Result,
		"at":       event.At.UTC(),
	}
	if event.NoteID != "" {
		doc["note_id"] = event.NoteID
	}

	_, err := r.coll.InsertOne(ctx, doc)
	return err
}
