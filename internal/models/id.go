package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a fresh 24-char hex identifier. Every store backend uses the
// same format so ids stay portable between them.
func NewID() string { return primitive.NewObjectID().Hex() }

// IsID reports whether s has the identifier shape produced by NewID.
func IsID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}
