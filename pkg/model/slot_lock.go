package model

import "time"

// SlotLock is an advisory lock document. Its _id encodes the slot
// coordinates, so a unique-index violation on insert means another
// request is booking the same slot right now. ExpiresAt is covered by
// a TTL index so abandoned locks clean themselves up.
type SlotLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}
