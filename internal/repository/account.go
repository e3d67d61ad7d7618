package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/brainbreak/brainbreak-api/internal/model"
)

// AccountRepository defines the interface for account-related database
// operations. Implementations return mongo.ErrNoDocuments for unknown emails
// and surface duplicate-key errors from Create unchanged; the usecase layer
// maps both to domain errors.
type AccountRepository interface {
	// Create inserts a new account. Email and username are covered by unique
	// indexes; the email is stored lowercased.
	Create(ctx context.Context, account *model.Account) (*model.Account, error)

	// GetByEmail retrieves an account by its (case-insensitive) email.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)

	// MarkVerified atomically sets verified and lastLogin and removes the
	// verification code and expiry, returning the post-update account.
	MarkVerified(ctx context.Context, email string, now time.Time) (*model.Account, error)

	// SetVerificationCode replaces the pending code and expiry.
	SetVerificationCode(ctx context.Context, email, code string, expiry time.Time) (*model.Account, error)

	// RecordLogin sets lastLogin.
	RecordLogin(ctx context.Context, email string, now time.Time) error

	// ApplyStats raises highScore to at most max(current, highScore),
	// increments gamesPlayed by one, and increments wins or losses depending
	// on outcome (neither when outcome is nil). Returns the post-update
	// account.
	ApplyStats(ctx context.Context, email string, highScore int, outcome *bool) (*model.Account, error)

	// TopByHighScore lists verified accounts ordered by highScore descending,
	// with secret fields projected out.
	TopByHighScore(ctx context.Context, limit int64) ([]*model.Account, error)
}

const accountCollection = "accounts"

type accountMongoRepository struct {
	db *mongo.Database
}

// NewAccountMongoRepository creates a MongoDB-backed account repository and
// ensures the uniqueness indexes the account lifecycle depends on.
func NewAccountMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) AccountRepository {
	collection := db.Collection(accountCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "high_score", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create account indexes")
	}

	return &accountMongoRepository{db: db}
}

func (r *accountMongoRepository) Create(ctx context.Context, account *model.Account) (*model.Account, error) {
	account.Email = normalizeEmail(account.Email)
	account.CreatedAt = time.Now()

	result, err := r.db.Collection(accountCollection).InsertOne(ctx, account)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		account.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return account, nil
}

func (r *accountMongoRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	result := r.db.Collection(accountCollection).FindOne(ctx, bson.M{"email": normalizeEmail(email)})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var account model.Account
	if err := result.Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *accountMongoRepository) MarkVerified(
	ctx context.Context,
	email string,
	now time.Time,
) (*model.Account, error) {
	update := bson.M{
		"$set": bson.M{
			"verified":   true,
			"last_login": now,
		},
		"$unset": bson.M{
			"verification_code":   "",
			"verification_expiry": "",
		},
	}

	return r.findOneAndUpdate(ctx, email, update)
}

func (r *accountMongoRepository) SetVerificationCode(
	ctx context.Context,
	email, code string,
	expiry time.Time,
) (*model.Account, error) {
	update := bson.M{
		"$set": bson.M{
			"verification_code":   code,
			"verification_expiry": expiry,
		},
	}

	return r.findOneAndUpdate(ctx, email, update)
}

func (r *accountMongoRepository) RecordLogin(ctx context.Context, email string, now time.Time) error {
	_, err := r.db.Collection(accountCollection).UpdateOne(
		ctx,
		bson.M{"email": normalizeEmail(email)},
		bson.M{"$set": bson.M{"last_login": now}},
	)
	return err
}

func (r *accountMongoRepository) ApplyStats(
	ctx context.Context,
	email string,
	highScore int,
	outcome *bool,
) (*model.Account, error) {
	inc := bson.M{"games_played": 1}
	if outcome != nil {
		if *outcome {
			inc["wins"] = 1
		} else {
			inc["losses"] = 1
		}
	}

	update := bson.M{
		"$max": bson.M{"high_score": highScore},
		"$inc": inc,
	}

	return r.findOneAndUpdate(ctx, email, update)
}

func (r *accountMongoRepository) TopByHighScore(ctx context.Context, limit int64) ([]*model.Account, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "high_score", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{
			"password_hash":       0,
			"verification_code":   0,
			"verification_expiry": 0,
		})

	cursor, err := r.db.Collection(accountCollection).Find(ctx, bson.M{"verified": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []*model.Account
	for cursor.Next(ctx) {
		var account model.Account
		if err := cursor.Decode(&account); err != nil {
			return nil, err
		}
		accounts = append(accounts, &account)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *accountMongoRepository) findOneAndUpdate(
	ctx context.Context,
	email string,
	update bson.M,
) (*model.Account, error) {
	result := r.db.Collection(accountCollection).FindOneAndUpdate(
		ctx,
		bson.M{"email": normalizeEmail(email)},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var account model.Account
	if err := result.Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
