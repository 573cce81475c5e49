package store

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
)

var ErrInvalidID = errors.New("invalid store id")

// The public routes accept two id families: UUIDs of persisted records
// and the small integer ids of the seed catalog. ID keeps the two
// explicitly tagged instead of guessing downstream.
type ID struct {
	record uuid.UUID
	seed   int
	isSeed bool
}

func RecordID(id uuid.UUID) ID {
	return ID{record: id}
}

func SeedID(n int) ID {
	return ID{seed: n, isSeed: true}
}

// ParseID reads a path segment into an ID. A valid UUID wins; otherwise
// a positive integer is taken as a seed id.
func ParseID(raw string) (ID, error) {
	if recordID, err := uuid.Parse(raw); err == nil {
		return RecordID(recordID), nil
	}

	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return SeedID(n), nil
	}

	return ID{}, ErrInvalidID
}

func (id ID) IsSeed() bool {
	return id.isSeed
}

func (id ID) Seed() int {
	return id.seed
}

func (id ID) Record() uuid.UUID {
	return id.record
}

func (id ID) String() string {
	if id.isSeed {
		return strconv.Itoa(id.seed)
	}
	return id.record.String()
}
