package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meridianbank/identity-gateway/internal/core/domain"
)

const identityCollection = "identities"

type IdentityStore struct {
	coll *mongo.Collection
}

func NewIdentityStore(db *mongo.Database) *IdentityStore {
	return &IdentityStore{coll: db.Collection(identityCollection)}
}

type mongoIdentity struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Email              string             `bson:"email"`
	FirstName          string             `bson:"first_name,omitempty"`
	LastName           string             `bson:"last_name,omitempty"`
	PasswordHash       string             `bson:"password_hash,omitempty"`
	CRMCustomerID      string             `bson:"crm_customer_id,omitempty"`
	CRMCustomerAddress string             `bson:"crm_customer_address,omitempty"`
	Enabled            bool               `bson:"enabled"`
	CreatedAt          int64              `bson:"created_at"`
	UpdatedAt          int64              `bson:"updated_at"`
}

// EnsureIndexes creates the unique email index backing the one-identity-per-
// customer invariant.
func (s *IdentityStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create identity indexes: %w", err)
	}
	return nil
}

func (s *IdentityStore) Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	_, err := s.coll.InsertOne(ctx, toDoc(identity))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrIdentityExists
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	// fetch back to get ID
	return s.FindByEmail(ctx, identity.Email)
}

func (s *IdentityStore) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	var mi mongoIdentity
	if err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mi); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}
	return fromDoc(&mi), nil
}

func (s *IdentityStore) Update(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	doc := toDoc(identity)
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"email": identity.Email},
		bson.M{"$set": bson.M{
			"first_name":           doc.FirstName,
			"last_name":            doc.LastName,
			"password_hash":        doc.PasswordHash,
			"crm_customer_id":      doc.CRMCustomerID,
			"crm_customer_address": doc.CRMCustomerAddress,
			"enabled":              doc.Enabled,
			"updated_at":           doc.UpdatedAt,
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("update identity: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrIdentityNotFound
	}
	return s.FindByEmail(ctx, identity.Email)
}

func toDoc(identity *domain.Identity) *mongoIdentity {
	return &mongoIdentity{
		Email:              identity.Email,
		FirstName:          identity.FirstName,
		LastName:           identity.LastName,
		PasswordHash:       identity.PasswordHash,
		CRMCustomerID:      identity.CRMCustomerID,
		CRMCustomerAddress: identity.CRMCustomerAddress,
		Enabled:            identity.Enabled,
		CreatedAt:          identity.CreatedAt.Unix(),
		UpdatedAt:          identity.UpdatedAt.Unix(),
	}
}

func fromDoc(mi *mongoIdentity) *domain.Identity {
	return &domain.Identity{
		ID:                 mi.ID.Hex(),
		Email:              mi.Email,
		FirstName:          mi.FirstName,
		LastName:           mi.LastName,
		PasswordHash:       mi.PasswordHash,
		CRMCustomerID:      mi.CRMCustomerID,
		CRMCustomerAddress: mi.CRMCustomerAddress,
		Enabled:            mi.Enabled,
		CreatedAt:          unixToTime(mi.CreatedAt),
		UpdatedAt:          unixToTime(mi.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
