package database

import (
	"fmt"
	"log"
	"time"

	bolt "go.etcd.io/bbolt"
)

// OpenBolt opens (or creates) an embedded bbolt database file.
func OpenBolt(path string) (*bolt.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("bolt path cannot be empty")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database %s: %w", path, err)
	}
	log.Printf("Opened bolt database %s.\n", path)
	return db, nil
}

// CloseBolt closes a bbolt database opened with OpenBolt.
func CloseBolt(db *bolt.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Printf("Failed to close bolt database: %v\n", err)
		return
	}
	log.Println("Bolt database closed.")
}
