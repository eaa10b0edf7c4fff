package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

const (
	collectionRoles       = "roles"
	collectionHierarchies = "role_hierarchies"
)

type RoleRepository struct {
	col *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{col: db.Collection(collectionRoles)}
}

type roleDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	CompanyScope []string           `bson:"company_scope,omitempty"`
	Permissions  bson.Raw           `bson:"permissions,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(domain.CanonicalID(id))
	if err != nil {
		return nil, domain.ErrDocumentNotFound
	}

	var doc roleDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}

	// The permission payload is opaque to access control; it is carried
	// through as raw JSON for the UI.
	var permissions json.RawMessage
	if len(doc.Permissions) > 0 {
		if data, err := bson.MarshalExtJSON(doc.Permissions, false, false); err == nil {
			permissions = data
		}
	}

	return &domain.Role{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		CompanyScope: domain.CanonicalIDs(doc.CompanyScope),
		Permissions:  permissions,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

type HierarchyRepository struct {
	col *mongo.Collection
}

func NewHierarchyRepository(db *mongo.Database) *HierarchyRepository {
	return &HierarchyRepository{col: db.Collection(collectionHierarchies)}
}

type hierarchyDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CompanyID string             `bson:"company_id"`
	Entries   []rankEntry        `bson:"entries"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type rankEntry struct {
	RoleRef string `bson:"role_ref"`
	Rank    int    `bson:"rank"`
}

// FindByCompany returns the company's hierarchy. A company with no stored
// hierarchy gets an empty one: every role is then unranked rather than the
// lookup failing.
func (r *HierarchyRepository) FindByCompany(ctx context.Context, companyID string) (*domain.RoleHierarchy, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	companyID = domain.CanonicalID(companyID)

	var doc hierarchyDoc
	if err := r.col.FindOne(ctx, bson.M{"company_id": companyID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &domain.RoleHierarchy{CompanyID: companyID}, nil
		}
		return nil, err
	}

	entries := make([]domain.RoleRank, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		entries = append(entries, domain.RoleRank{RoleRef: domain.CanonicalID(e.RoleRef), Rank: e.Rank})
	}
	return &domain.RoleHierarchy{
		ID:        doc.ID.Hex(),
		CompanyID: domain.CanonicalID(doc.CompanyID),
		Entries:   entries,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

// Save upserts the hierarchy for its company.
func (r *HierarchyRepository) Save(ctx context.Context, hierarchy *domain.RoleHierarchy) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	entries := make([]rankEntry, 0, len(hierarchy.Entries))
	for _, e := range hierarchy.Entries {
		entries = append(entries, rankEntry{RoleRef: domain.CanonicalID(e.RoleRef), Rank: e.Rank})
	}

	companyID := domain.CanonicalID(hierarchy.CompanyID)
	update := bson.M{"$set": bson.M{
		"company_id": companyID,
		"entries":    entries,
		"updated_at": time.Now().UTC(),
	}}
	_, err := r.col.UpdateOne(ctx, bson.M{"company_id": companyID}, update, options.Update().SetUpsert(true))
	return err
}

// EnsureIndexes creates necessary indexes on the hierarchies collection.
func (r *HierarchyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "company_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
