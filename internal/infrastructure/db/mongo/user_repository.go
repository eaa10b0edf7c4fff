package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Email             string             `bson:"email"`
	Name              string             `bson:"name"`
	PasswordHash      string             `bson:"password_hash"`
	HomeCompanyID     string             `bson:"home_company_id"`
	CurrentCompanyID  string             `bson:"current_company_id,omitempty"`
	ActiveClientID    string             `bson:"active_client_id,omitempty"`
	AssignedClientIDs []string           `bson:"assigned_client_ids,omitempty"`
	Role              string             `bson:"role"`
	RoleRef           string             `bson:"role_ref"`
	LastActiveClients map[string]string  `bson:"last_active_client_by_company,omitempty"`
	Enabled           bool               `bson:"enabled"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:                        d.ID.Hex(),
		Email:                     d.Email,
		Name:                      d.Name,
		PasswordHash:              d.PasswordHash,
		HomeCompanyID:             domain.CanonicalID(d.HomeCompanyID),
		CurrentCompanyID:          domain.CanonicalID(d.CurrentCompanyID),
		ActiveClientID:            domain.CanonicalID(d.ActiveClientID),
		AssignedClientIDs:         domain.CanonicalIDs(d.AssignedClientIDs),
		Role:                      d.Role,
		RoleRef:                   domain.CanonicalID(d.RoleRef),
		LastActiveClientByCompany: d.LastActiveClients,
		Enabled:                   d.Enabled,
		CreatedAt:                 d.CreatedAt,
		UpdatedAt:                 d.UpdatedAt,
	}
}

func fromDomainUser(u *domain.User) userDoc {
	return userDoc{
		Email:             u.Email,
		Name:              u.Name,
		PasswordHash:      u.PasswordHash,
		HomeCompanyID:     domain.CanonicalID(u.HomeCompanyID),
		CurrentCompanyID:  domain.CanonicalID(u.CurrentCompanyID),
		ActiveClientID:    domain.CanonicalID(u.ActiveClientID),
		AssignedClientIDs: domain.CanonicalIDs(u.AssignedClientIDs),
		Role:              u.Role,
		RoleRef:           domain.CanonicalID(u.RoleRef),
		LastActiveClients: u.LastActiveClientByCompany,
		Enabled:           u.Enabled,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(domain.CanonicalID(id))
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, fromDomainUser(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(domain.CanonicalID(user.ID))
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, fromDomainUser(user))
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateActiveContext persists the outcome of a context switch. The whole
// preference map is written in one set; concurrent switches by the same user
// are last-write-wins.
func (r *UserRepository) UpdateActiveContext(ctx context.Context, userID, companyID, clientID string, lastActive map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(domain.CanonicalID(userID))
	if err != nil {
		return domain.ErrUserNotFound
	}

	update := bson.M{"$set": bson.M{
		"current_company_id":            domain.CanonicalID(companyID),
		"active_client_id":              domain.CanonicalID(clientID),
		"last_active_client_by_company": lastActive,
		"updated_at":                    time.Now().UTC(),
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update active context: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "home_company_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
