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

const collectionCampaigns = "campaigns"

type CampaignRepository struct {
	col *mongo.Collection
}

func NewCampaignRepository(db *mongo.Database) *CampaignRepository {
	return &CampaignRepository{col: db.Collection(collectionCampaigns)}
}

type campaignDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CompanyID string             `bson:"company_id"`
	ClientID  string             `bson:"client_id"`
	Title     string             `bson:"title"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *campaignDoc) toDomain() *domain.Campaign {
	return &domain.Campaign{
		ID:        d.ID.Hex(),
		CompanyID: domain.CanonicalID(d.CompanyID),
		ClientID:  domain.CanonicalID(d.ClientID),
		Title:     d.Title,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(domain.CanonicalID(id))
	if err != nil {
		return nil, domain.ErrDocumentNotFound
	}

	var doc campaignDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// List returns the company's campaigns restricted to the given clients.
// The clientIDs predicate comes from AllowedClients; an empty predicate
// yields an empty result without touching the store.
func (r *CampaignRepository) List(ctx context.Context, companyID string, clientIDs []string) ([]*domain.Campaign, error) {
	if len(clientIDs) == 0 {
		return []*domain.Campaign{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"company_id": domain.CanonicalID(companyID),
		"client_id":  bson.M{"$in": clientIDs},
	}
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	campaigns := make([]*domain.Campaign, 0)
	for cursor.Next(ctx) {
		var doc campaignDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, doc.toDomain())
	}
	return campaigns, cursor.Err()
}

func (r *CampaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(domain.CanonicalID(campaign.ID))
	if err != nil {
		return domain.ErrDocumentNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":      campaign.Title,
		"status":     campaign.Status,
		"updated_at": campaign.UpdatedAt,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(domain.CanonicalID(id))
	if err != nil {
		return domain.ErrDocumentNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the campaigns collection.
func (r *CampaignRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "client_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
