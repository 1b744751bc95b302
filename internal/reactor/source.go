package reactor

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/screamhq/screams-backend/internal/repositories"
)

const reconnectDelay = 5 * time.Second

// watchedCollections is the set of collections whose changes feed reactions
var watchedCollections = []string{
	repositories.CollectionLikes,
	repositories.CollectionComments,
	repositories.CollectionUsers,
	repositories.CollectionScreams,
}

// Source delivers document change events
type Source interface {
	Events(ctx context.Context) (<-chan Event, error)
}

// MongoSource consumes a database-level change stream and turns it into
// Events. It reconnects on transient errors, resuming from the last seen
// token so nothing is skipped.
type MongoSource struct {
	db *mongo.Database
}

// NewMongoSource creates a new MongoSource
func NewMongoSource(db *mongo.Database) *MongoSource {
	return &MongoSource{db: db}
}

// changeEvent is the raw change stream document shape
type changeEvent struct {
	OperationType            string   `bson:"operationType"`
	DocumentKey              bson.Raw `bson:"documentKey"`
	FullDocument             bson.Raw `bson:"fullDocument"`
	FullDocumentBeforeChange bson.Raw `bson:"fullDocumentBeforeChange"`
	NS                       struct {
		DB   string `bson:"db"`
		Coll string `bson:"coll"`
	} `bson:"ns"`
}

// Events opens the change stream and returns the event channel. The channel
// is closed when the context is cancelled.
func (s *MongoSource) Events(ctx context.Context) (<-chan Event, error) {
	out := make(chan Event)

	go func() {
		defer close(out)
		var resumeToken bson.Raw
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			token, err := s.consume(ctx, resumeToken, out)
			if token != nil {
				resumeToken = token
			}
			if err != nil && ctx.Err() == nil {
				log.Printf("change stream error, reconnecting: %v", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(reconnectDelay):
				}
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	return out, nil
}

// consume reads the stream until it fails or the context ends, returning the
// last resume token seen
func (s *MongoSource) consume(ctx context.Context, resumeToken bson.Raw, out chan<- Event) (bson.Raw, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"operationType": bson.M{"$in": []string{"insert", "update", "delete"}},
			"ns.coll":       bson.M{"$in": watchedCollections},
		}}},
	}
	opts := options.ChangeStream().
		SetFullDocument(options.UpdateLookup).
		SetFullDocumentBeforeChange(options.WhenAvailable)
	if resumeToken != nil {
		opts.SetResumeAfter(resumeToken)
	}

	stream, err := s.db.Watch(ctx, pipeline, opts)
	if err != nil {
		return resumeToken, fmt.Errorf("failed to open change stream: %w", err)
	}
	defer stream.Close(ctx)

	log.Println("change stream connected")

	for stream.Next(ctx) {
		var raw changeEvent
		if err := stream.Decode(&raw); err != nil {
			log.Printf("failed to decode change event: %v", err)
			continue
		}

		event := Event{
			Op:         Op(raw.OperationType),
			Collection: raw.NS.Coll,
			DocumentID: documentID(raw.DocumentKey),
			Before:     raw.FullDocumentBeforeChange,
			After:      raw.FullDocument,
		}

		select {
		case out <- event:
		case <-ctx.Done():
			return stream.ResumeToken(), ctx.Err()
		}
	}

	return stream.ResumeToken(), stream.Err()
}

// documentID extracts the changed document's id as a string. Scream, like and
// comment ids are ObjectIDs; user ids are handles.
func documentID(documentKey bson.Raw) string {
	value := documentKey.Lookup("_id")
	if oid, ok := value.ObjectIDOK(); ok {
		return oid.Hex()
	}
	if s, ok := value.StringValueOK(); ok {
		return s
	}
	return value.String()
}
