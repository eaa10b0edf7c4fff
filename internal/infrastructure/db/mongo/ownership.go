package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

// ownershipCollections maps a guarded resource kind to its collection. All
// tenant-owned kinds store the owning company under the same field name.
var ownershipCollections = map[string]string{
	"campaign": collectionCampaigns,
	"client":   collectionClients,
	"user":     collectionUsers,
}

// OwnershipStore loads only the owning company of a document, the minimal
// projection the tenant guard needs to decide, without materializing the
// document body.
type OwnershipStore struct {
	db *mongo.Database
}

func NewOwnershipStore(db *mongo.Database) *OwnershipStore {
	return &OwnershipStore{db: db}
}

func (s *OwnershipStore) OwnerCompany(ctx context.Context, kind, id string) (string, error) {
	collName, ok := ownershipCollections[kind]
	if !ok {
		return "", fmt.Errorf("ownership: unknown resource kind %q", kind)
	}

	oid, err := primitive.ObjectIDFromHex(domain.CanonicalID(id))
	if err != nil {
		return "", domain.ErrDocumentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ownerField := "company_id"
	if kind == "user" {
		ownerField = "home_company_id"
	}

	var doc bson.M
	err = s.db.Collection(collName).FindOne(ctx, bson.M{"_id": oid},
		options.FindOne().SetProjection(bson.M{ownerField: 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrDocumentNotFound
		}
		return "", err
	}

	owner, _ := doc[ownerField].(string)
	if owner == "" {
		// A tenant-owned document without an owner is a data defect; treat
		// it as unreachable rather than leak it to any tenant.
		return "", domain.ErrDocumentNotFound
	}
	return domain.CanonicalID(owner), nil
}
