package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

const collectionAudit = "audit_log"

// AuditRepository persists impersonated-mutation records. Writes are
// append-only; nothing in the core updates or deletes an audit entry.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

type auditDoc struct {
	ID             string    `bson:"_id"`
	SubjectUserID  string    `bson:"subject_user_id"`
	ImpersonatorID string    `bson:"impersonator_id"`
	CompanyID      string    `bson:"company_id"`
	Method         string    `bson:"method"`
	Path           string    `bson:"path"`
	OccurredAt     time.Time `bson:"occurred_at"`
}

func (r *AuditRepository) Record(ctx context.Context, rec *domain.AuditRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, auditDoc{
		ID:             rec.ID,
		SubjectUserID:  rec.SubjectUserID,
		ImpersonatorID: rec.ImpersonatorID,
		CompanyID:      rec.CompanyID,
		Method:         rec.Method,
		Path:           rec.Path,
		OccurredAt:     rec.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the audit collection.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "impersonator_id", Value: 1}}},
		{Keys: bson.D{{Key: "subject_user_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
