// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

// Package store provides BadgerDB-backed persistence for users, brands, and
// analysis history.
//
// Key layout:
//
//	user:<email>                         -> User
//	brand:<owner_id>:<name>              -> Brand
//	analysis:<owner_id>:<name>:<revts>   -> Analysis
//
// Analysis keys embed an inverted timestamp so prefix iteration yields
// newest entries first without a sort pass.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/metrics"
)

// Sentinel errors returned by store operations.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// Key prefixes for BadgerDB storage.
const (
	userKeyPrefix     = "user:"
	brandKeyPrefix    = "brand:"
	analysisKeyPrefix = "analysis:"
)

// Store wraps a Badger database with typed operations.
type Store struct {
	db *badger.DB
}

// Open creates a store at path. An empty path opens an in-memory database,
// used by tests and the default test environment.
func Open(path string) (*Store, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	// Badger's default logger writes unstructured lines to stderr.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is usable. Used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.View(func(txn *badger.Txn) error {
		return nil
	})
}

// CreateUser stores a new user keyed by email.
// Returns ErrAlreadyExists when the email is taken.
func (s *Store) CreateUser(ctx context.Context, user *User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		key := []byte(userKeyPrefix + strings.ToLower(user.Email))
		if _, err := txn.Get(key); err == nil {
			return ErrAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check user: %w", err)
		}
		return txn.Set(key, data)
	})
	metrics.RecordStoreOperation("create_user", err)
	return err
}

// GetUser retrieves a user by email. Returns ErrNotFound when absent.
func (s *Store) GetUser(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + strings.ToLower(email)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	metrics.RecordStoreOperation("get_user", err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserPassword replaces the stored password hash for email.
func (s *Store) UpdateUserPassword(ctx context.Context, email, passwordHash string) error {
	user, err := s.GetUser(ctx, email)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(userKeyPrefix+strings.ToLower(email)), data)
	})
	metrics.RecordStoreOperation("update_user_password", err)
	return err
}

// UpsertBrand creates or refreshes a brand record for an owner.
func (s *Store) UpsertBrand(ctx context.Context, brand *Brand) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(brandKeyPrefix + brand.OwnerID + ":" + strings.ToLower(brand.Name))

		// Keep the original creation time on refresh.
		if item, err := txn.Get(key); err == nil {
			var existing Brand
			if verr := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &existing)
			}); verr == nil {
				brand.ID = existing.ID
				brand.CreatedAt = existing.CreatedAt
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check brand: %w", err)
		}

		brand.UpdatedAt = time.Now().UTC()
		data, err := json.Marshal(brand)
		if err != nil {
			return fmt.Errorf("marshal brand: %w", err)
		}
		return txn.Set(key, data)
	})
	metrics.RecordStoreOperation("upsert_brand", err)
	return err
}

// ListBrands returns all brands owned by ownerID, ordered by name.
func (s *Store) ListBrands(ctx context.Context, ownerID string) ([]*Brand, error) {
	var brands []*Brand
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(brandKeyPrefix + ownerID + ":")
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var brand Brand
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &brand)
			}); err != nil {
				return fmt.Errorf("unmarshal brand: %w", err)
			}
			brands = append(brands, &brand)
		}
		return nil
	})
	metrics.RecordStoreOperation("list_brands", err)
	if err != nil {
		return nil, err
	}
	return brands, nil
}

// SaveAnalysis persists a completed analysis for later history queries.
func (s *Store) SaveAnalysis(ctx context.Context, analysis *Analysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	key := analysisKey(analysis.OwnerID, analysis.BrandName, analysis.CreatedAt, analysis.ID)
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	metrics.RecordStoreOperation("save_analysis", err)
	return err
}

// ListAnalyses returns up to limit analyses for a brand, newest first.
// A limit of 0 or less means no cap.
func (s *Store) ListAnalyses(ctx context.Context, ownerID, brandName string, limit int) ([]*Analysis, error) {
	var analyses []*Analysis
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(analysisKeyPrefix + ownerID + ":" + strings.ToLower(brandName) + ":")
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(analyses) >= limit {
				break
			}
			var analysis Analysis
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &analysis)
			}); err != nil {
				return fmt.Errorf("unmarshal analysis: %w", err)
			}
			analyses = append(analyses, &analysis)
		}
		return nil
	})
	metrics.RecordStoreOperation("list_analyses", err)
	if err != nil {
		return nil, err
	}
	return analyses, nil
}

// CountAnalysesSince counts analyses an owner ran at or after cutoff, across
// all brands. Used to enforce plan limits.
func (s *Store) CountAnalysesSince(ctx context.Context, ownerID string, cutoff time.Time) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(analysisKeyPrefix + ownerID + ":")
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var analysis Analysis
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &analysis)
			}); err != nil {
				return fmt.Errorf("unmarshal analysis: %w", err)
			}
			if !analysis.CreatedAt.Before(cutoff) {
				count++
			}
		}
		return nil
	})
	metrics.RecordStoreOperation("count_analyses", err)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// analysisKey builds an analysis key with an inverted timestamp so that
// lexicographic iteration returns newest first.
func analysisKey(ownerID, brandName string, createdAt time.Time, id string) []byte {
	inverted := math.MaxInt64 - createdAt.UTC().UnixNano()
	return []byte(fmt.Sprintf("%s%s:%s:%019d:%s",
		analysisKeyPrefix, ownerID, strings.ToLower(brandName), inverted, id))
}
