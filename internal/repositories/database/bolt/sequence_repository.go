// Package bolt keeps document-number sequences in an embedded bbolt file for
// single-node deployments that do not want the entry_sequences table.
package bolt

import (
	"context"
	"fmt"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/ohada_ledger/internal/core/ports/repositories"
	bolt "go.etcd.io/bbolt"
)

var sequencesBucket = []byte("sequences")

type SequenceRepository struct {
	db *bolt.DB
}

// NewSequenceRepository creates a sequence store on an open bbolt database.
func NewSequenceRepository(db *bolt.DB) (portsrepo.SequenceRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sequencesBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sequences bucket: %w", err)
	}
	return &SequenceRepository{db: db}, nil
}

var _ portsrepo.SequenceRepository = (*SequenceRepository)(nil)

// NextValue advances the scope's bucket sequence. bbolt allows a single writer at a time,
// so values are never handed out twice.
func (r *SequenceRepository) NextValue(ctx context.Context, scopeKey string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var value uint64
	err := r.db.Update(func(tx *bolt.Tx) error {
		scope, err := tx.Bucket(sequencesBucket).CreateBucketIfNotExists([]byte(scopeKey))
		if err != nil {
			return err
		}
		value, err = scope.NextSequence()
		return err
	})
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance sequence "+scopeKey, err)
	}
	return int64(value), nil
}
