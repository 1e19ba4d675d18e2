// Package boltdb implements the single durable table the relayer keeps
// across restarts: network_validators(public_key, block_number). Backed
// by go.etcd.io/bbolt, an embedded single-file KV store standing in for
// spec's "embedded relational store" — the retrieval pack carries no SQL
// driver, and bbolt is the closest pack-grounded embedded-storage
// dependency (used throughout Prysm's beacon-chain/db/kv).
package boltdb

import (
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var networkValidatorsBucket = []byte("network_validators")

// Store is the embedded network_validators table.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if absent) the embedded store file at path and
// ensures the network_validators bucket exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "opening bbolt database")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(networkValidatorsBucket)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "initializing network_validators bucket")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Insert upserts a (public_key -> block_number) row. The primary key is
// the public key; last writer wins on block_number, matching bulk
// genesis loads re-running safely.
func (s *Store) Insert(publicKey string, blockNumber uint64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(networkValidatorsBucket)
		var v [8]byte
		binary.BigEndian.PutUint64(v[:], blockNumber)
		return b.Put([]byte(publicKey), v[:])
	})
}

// InsertBatch upserts many rows in a single transaction, used by the
// genesis bulk-load.
func (s *Store) InsertBatch(rows map[string]uint64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(networkValidatorsBucket)
		for pubKey, blockNumber := range rows {
			var v [8]byte
			binary.BigEndian.PutUint64(v[:], blockNumber)
			if err := b.Put([]byte(pubKey), v[:]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Has reports whether publicKey has a row.
func (s *Store) Has(publicKey string) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(networkValidatorsBucket).Get([]byte(publicKey))
		found = v != nil
		return nil
	})
	return found, err
}

// Count returns the number of rows, used to decide whether the
// one-time genesis load should run.
func (s *Store) Count() (int, error) {
	count := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(networkValidatorsBucket).ForEach(func(_, _ []byte) error {
			count++
			return nil
		})
	})
	return count, err
}

// MaxBlockNumber returns the highest block_number seen across all rows,
// used to seed the scanner's last_processed_block after a genesis load.
func (s *Store) MaxBlockNumber() (uint64, error) {
	var max uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(networkValidatorsBucket).ForEach(func(_, v []byte) error {
			n := binary.BigEndian.Uint64(v)
			if n > max {
				max = n
			}
			return nil
		})
	})
	return max, err
}

// All returns every registered public key, for building the in-memory
// "registered keys" set at startup.
func (s *Store) All() (map[string]struct{}, error) {
	out := make(map[string]struct{})
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(networkValidatorsBucket).ForEach(func(k, _ []byte) error {
			out[string(k)] = struct{}{}
			return nil
		})
	})
	return out, err
}
