// Package uuid wraps github.com/google/uuid so that IDs can be bound
// from URI and query parameters.
package uuid

import (
	"errors"

	google_uuid "github.com/google/uuid"
)

var ErrInvalidUUID = errors.New("the specified resource ID is not a valid UUID")

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

// Parse parses s into a UUID. An empty string yields Nil.
func Parse(s string) (UUID, error) {
	if s == "" {
		return Nil, nil
	}

	parsed, err := google_uuid.Parse(s)
	if err != nil {
		return Nil, ErrInvalidUUID
	}

	return UUID{parsed}, nil
}

// UnmarshalParam implements gin's BindUnmarshaler so that
// UUIDs can be used in uri and form bindings.
func (u *UUID) UnmarshalParam(p string) error {
	parsed, err := Parse(p)
	if err != nil {
		return err
	}

	*u = parsed
	return nil
}
