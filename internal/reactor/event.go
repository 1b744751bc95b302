package reactor

import "go.mongodb.org/mongo-driver/bson"

// Op is the kind of document change an event describes
type Op string

// Change stream operation types
const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event is one document change delivered by the store. Delivery is
// at-least-once with no ordering guarantee across documents, so every
// reaction has to tolerate redelivery.
type Event struct {
	Op         Op
	Collection string
	DocumentID string
	// Before is the document before the change. Only present on updates and
	// deletes, and only when the collection records pre-images.
	Before bson.Raw
	// After is the document after the change. Present on inserts and updates.
	After bson.Raw
}
