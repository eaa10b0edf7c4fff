package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

const collectionCompanies = "companies"

type CompanyRepository struct {
	col *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{col: db.Collection(collectionCompanies)}
}

type companyDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	MasterClientIDs []string           `bson:"master_client_ids"`
	DomainAliases   []string           `bson:"domain_aliases"`
	Status          string             `bson:"status"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (d *companyDoc) toDomain() *domain.Company {
	return &domain.Company{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		MasterClientIDs: domain.CanonicalIDs(d.MasterClientIDs),
		DomainAliases:   d.DomainAliases,
		Status:          domain.CompanyStatus(d.Status),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(domain.CanonicalID(id))
	if err != nil {
		return nil, domain.ErrCompanyNotFound
	}

	var doc companyDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// FindByAnyAlias returns active companies holding at least one of the given
// domain aliases. The resolver passes the candidate prefix set of a
// subdomain label so a single indexed $in query covers the whole search.
func (r *CompanyRepository) FindByAnyAlias(ctx context.Context, aliases []string) ([]*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"domain_aliases": bson.M{"$in": aliases},
		"status":         string(domain.CompanyActive),
	}
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var companies []*domain.Company
	for cursor.Next(ctx) {
		var doc companyDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		companies = append(companies, doc.toDomain())
	}
	return companies, cursor.Err()
}

// EnsureIndexes creates necessary indexes on the companies collection.
func (r *CompanyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "domain_aliases", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
