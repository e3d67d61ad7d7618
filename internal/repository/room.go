package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/brainbreak/brainbreak-api/internal/model"
)

// RoomRepository defines the interface for room-related database operations.
// Conditional operations (ClaimAvailable, ApplyMove, Finish and versioned
// Update) return mongo.ErrNoDocuments when their condition does not hold; the
// usecase layer turns that into the appropriate domain error.
type RoomRepository interface {
	// Create inserts a new waiting room.
	Create(ctx context.Context, room *model.Room) (*model.Room, error)

	// Get retrieves a room by its roomId.
	Get(ctx context.Context, roomID string) (*model.Room, error)

	// ClaimAvailable atomically selects a waiting room not hosted by the
	// joiner and claims it: guest fields set, status moved to playing, turn
	// handed to the host, startedAt stamped. The single conditional update
	// makes the guest slot exclusive.
	ClaimAvailable(ctx context.Context, guestEmail, guestUsername string, now time.Time) (*model.Room, error)

	// Update applies a partial field update: absent (nil) fields are left
	// untouched. When params.Version is set the update is conditional on it.
	// Returns the post-update snapshot.
	Update(ctx context.Context, roomID string, params UpdateRoomParams) (*model.Room, error)

	// ApplyMove records a validated move. It only applies while the room is
	// still in play with the given role on turn at the given version. A match
	// adds the score increment and keeps the turn; a miss passes it.
	ApplyMove(ctx context.Context, roomID string, role model.TurnRole, matched bool, version int64) (*model.Room, error)

	// Finish performs the terminal playing→finished transition, conditional
	// on the version, recording the winner and finishedAt. It succeeds for
	// exactly one caller per version.
	Finish(ctx context.Context, roomID, winner string, now time.Time, version int64) (*model.Room, error)
}

// UpdateRoomParams defines the optional fields for a partial room update.
// Only the fields that are not nil will be applied.
type UpdateRoomParams struct {
	HostScore   *int
	GuestScore  *int
	GameMode    *string
	CurrentTurn *model.TurnRole
	Status      *model.RoomStatus

	// Version, when set, makes the update conditional: it applies only if the
	// stored version still matches.
	Version *int64
}

// MatchScoreIncrement is the score awarded for matching a pair.
const MatchScoreIncrement = 10

const roomCollection = "rooms"

type roomMongoRepository struct {
	db *mongo.Database
}

// NewRoomMongoRepository creates a MongoDB-backed room repository and ensures
// the roomId uniqueness index plus the index backing the waiting-room scan.
func NewRoomMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) RoomRepository {
	collection := db.Collection(roomCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "room_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create room indexes")
	}

	return &roomMongoRepository{db: db}
}

func (r *roomMongoRepository) Create(ctx context.Context, room *model.Room) (*model.Room, error) {
	room.CreatedAt = time.Now()

	result, err := r.db.Collection(roomCollection).InsertOne(ctx, room)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		room.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return room, nil
}

func (r *roomMongoRepository) Get(ctx context.Context, roomID string) (*model.Room, error) {
	result := r.db.Collection(roomCollection).FindOne(ctx, bson.M{"room_id": roomID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var room model.Room
	if err := result.Decode(&room); err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *roomMongoRepository) ClaimAvailable(
	ctx context.Context,
	guestEmail, guestUsername string,
	now time.Time,
) (*model.Room, error) {
	filter := bson.M{
		"status": model.RoomStatusWaiting,
		"guest":  nil,
		"host":   bson.M{"$ne": guestEmail},
	}
	update := bson.M{
		"$set": bson.M{
			"guest":          guestEmail,
			"guest_username": guestUsername,
			"status":         model.RoomStatusPlaying,
			"current_turn":   model.TurnHost,
			"started_at":     now,
		},
		"$inc": bson.M{"version": 1},
	}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *roomMongoRepository) Update(
	ctx context.Context,
	roomID string,
	params UpdateRoomParams,
) (*model.Room, error) {
	setMap := bson.M{}
	if params.HostScore != nil {
		setMap["host_score"] = *params.HostScore
	}
	if params.GuestScore != nil {
		setMap["guest_score"] = *params.GuestScore
	}
	if params.GameMode != nil {
		setMap["game_mode"] = *params.GameMode
	}
	if params.CurrentTurn != nil {
		setMap["current_turn"] = *params.CurrentTurn
	}
	if params.Status != nil {
		setMap["status"] = *params.Status
	}

	filter := bson.M{"room_id": roomID}
	if params.Version != nil {
		filter["version"] = *params.Version
	}

	update := bson.M{"$inc": bson.M{"version": 1}}
	if len(setMap) > 0 {
		update["$set"] = setMap
	}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *roomMongoRepository) ApplyMove(
	ctx context.Context,
	roomID string,
	role model.TurnRole,
	matched bool,
	version int64,
) (*model.Room, error) {
	filter := bson.M{
		"room_id":      roomID,
		"status":       model.RoomStatusPlaying,
		"current_turn": role,
		"version":      version,
	}

	inc := bson.M{"version": 1}
	update := bson.M{"$inc": inc}
	if matched {
		scoreField := "host_score"
		if role == model.TurnGuest {
			scoreField = "guest_score"
		}
		inc[scoreField] = MatchScoreIncrement
	} else {
		update["$set"] = bson.M{"current_turn": role.Opponent()}
	}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *roomMongoRepository) Finish(
	ctx context.Context,
	roomID, winner string,
	now time.Time,
	version int64,
) (*model.Room, error) {
	filter := bson.M{
		"room_id": roomID,
		"status":  model.RoomStatusPlaying,
		"version": version,
	}
	update := bson.M{
		"$set": bson.M{
			"status":      model.RoomStatusFinished,
			"winner":      winner,
			"finished_at": now,
		},
		"$inc": bson.M{"version": 1},
	}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *roomMongoRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*model.Room, error) {
	result := r.db.Collection(roomCollection).FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var room model.Room
	if err := result.Decode(&room); err != nil {
		return nil, err
	}

	return &room, nil
}
