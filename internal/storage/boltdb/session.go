package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/tabata/internal/storage"
)

var lastSessionKey = []byte("current")

// SaveLastSession stores the session to restore on next start
func (s *Storage) SaveLastSession(ctx context.Context, last *storage.LastSession) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data, err := json.Marshal(last)
		if err != nil {
			return fmt.Errorf("failed to marshal last session: %w", err)
		}

		if err := bucket.Put(lastSessionKey, data); err != nil {
			return fmt.Errorf("failed to save last session: %w", err)
		}

		return nil
	})
}

// GetLastSession retrieves the remembered session
func (s *Storage) GetLastSession(ctx context.Context) (*storage.LastSession, error) {
	var last *storage.LastSession

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data := bucket.Get(lastSessionKey)
		if data == nil {
			return storage.ErrLastSessionNotFound
		}

		last = &storage.LastSession{}
		if err := json.Unmarshal(data, last); err != nil {
			return fmt.Errorf("failed to unmarshal last session: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return last, nil
}

// DeleteLastSession removes the remembered session (logout)
func (s *Storage) DeleteLastSession(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if err := bucket.Delete(lastSessionKey); err != nil {
			return fmt.Errorf("failed to delete last session: %w", err)
		}

		return nil
	})
}
