package participants

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrNotVerified         = errors.New("participant not verified")
	ErrAlreadyScanned      = errors.New("participant already scanned")
)

// AddParticipant saves a new registration and returns the store assigned id.
func (dbService *ParticipantDBService) AddParticipant(participant regTypes.Participant) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	participant.ID = primitive.NilObjectID
	res, err := dbService.collectionParticipants().InsertOne(ctx, participant)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

// GetParticipantByID looks up a single registration record.
func (dbService *ParticipantDBService) GetParticipantByID(id string) (participant regTypes.Participant, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return participant, ErrParticipantNotFound
	}

	filter := bson.M{"_id": objID}
	err = dbService.collectionParticipants().FindOne(ctx, filter).Decode(&participant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return participant, ErrParticipantNotFound
		}
		return participant, err
	}
	return participant, nil
}

// GetParticipants returns the full record set ordered by creation timestamp descending.
func (dbService *ParticipantDBService) GetParticipants() (participants []regTypes.Participant, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find()
	opts.SetSort(bson.M{"timestamp": -1})

	cursor, err := dbService.collectionParticipants().Find(ctx, bson.M{}, opts)
	if err != nil {
		return participants, err
	}
	defer cursor.Close(ctx)

	participants = []regTypes.Participant{}
	err = cursor.All(ctx, &participants)
	return participants, err
}

// UpdateStatusToVerified transitions a pending record to verified. The
// transition is monotonic: verifying an already verified record is a no-op
// success, and a verified record can never fall back to pending.
func (dbService *ParticipantDBService) UpdateStatusToVerified(id string) (regTypes.Participant, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return regTypes.Participant{}, ErrParticipantNotFound
	}

	filter := bson.M{
		"_id":    objID,
		"status": regTypes.PARTICIPANT_STATUS_PENDING,
	}
	update := bson.M{"$set": bson.M{"status": regTypes.PARTICIPANT_STATUS_VERIFIED}}

	var updated regTypes.Participant
	err = dbService.collectionParticipants().FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return regTypes.Participant{}, err
	}

	// Either the record is absent or it was already verified.
	current, getErr := dbService.GetParticipantByID(id)
	if getErr != nil {
		return regTypes.Participant{}, getErr
	}
	return current, nil
}

// MarkScanned performs the one-time admission transition: it sets
// scanned=true and scannedAt only if the record is verified and not scanned
// yet. The filter makes the check-then-act race of concurrent scans
// impossible: at most one caller observes a successful update, every other
// caller gets ErrAlreadyScanned together with the record holding the original
// scannedAt.
func (dbService *ParticipantDBService) MarkScanned(id string, scannedAt string) (regTypes.Participant, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return regTypes.Participant{}, ErrParticipantNotFound
	}

	filter := bson.M{
		"_id":     objID,
		"status":  regTypes.PARTICIPANT_STATUS_VERIFIED,
		"scanned": bson.M{"$ne": true},
	}
	update := bson.M{"$set": bson.M{
		"scanned":   true,
		"scannedAt": scannedAt,
	}}

	var updated regTypes.Participant
	err = dbService.collectionParticipants().FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return regTypes.Participant{}, err
	}

	// Classify why the guarded update matched nothing.
	current, getErr := dbService.GetParticipantByID(id)
	if getErr != nil {
		return regTypes.Participant{}, getErr
	}
	if !current.IsVerified() {
		return current, ErrNotVerified
	}
	if current.Scanned {
		return current, ErrAlreadyScanned
	}
	return current, err
}

// DeleteParticipantByID removes a single registration record.
func (dbService *ParticipantDBService) DeleteParticipantByID(id string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrParticipantNotFound
	}

	filter := bson.M{"_id": objID}
	res, err := dbService.collectionParticipants().DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

// DeleteAllParticipants purges the whole collection (admin bulk reset).
func (dbService *ParticipantDBService) DeleteAllParticipants() (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionParticipants().DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
