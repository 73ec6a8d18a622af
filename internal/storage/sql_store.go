package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"typepet/internal/database"
)

// SQLStore persists documents in a single documents table through the
// dialect-aware database layer
type SQLStore struct {
	db *database.DB
}

// NewSQLStore creates a store over an open database connection, ensuring the
// documents table exists
func NewSQLStore(db *database.DB) (*SQLStore, error) {
	if err := db.EnsureSchema(); err != nil {
		return nil, err
	}
	return &SQLStore{db: db}, nil
}

// Get retrieves a single document
func (s *SQLStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	query := s.db.Dialect.RewriteQuery(
		"SELECT doc_value FROM documents WHERE collection = ? AND doc_key = ?")

	var value string
	err := s.db.DB.QueryRowContext(ctx, query, collection, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, key, err)
	}
	return []byte(value), nil
}

// Put inserts or replaces a document
func (s *SQLStore) Put(ctx context.Context, collection, key string, value []byte) error {
	query := s.db.Dialect.RewriteQuery(s.db.Dialect.UpsertDocumentQuery())

	if _, err := s.db.DB.ExecContext(ctx, query, collection, key, string(value), time.Now()); err != nil {
		return fmt.Errorf("failed to put document %s/%s: %w", collection, key, err)
	}
	return nil
}

// Delete removes a document; deleting a missing document is not an error
func (s *SQLStore) Delete(ctx context.Context, collection, key string) error {
	query := s.db.Dialect.RewriteQuery(
		"DELETE FROM documents WHERE collection = ? AND doc_key = ?")

	if _, err := s.db.DB.ExecContext(ctx, query, collection, key); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, key, err)
	}
	return nil
}

// Clear removes every document in a collection
func (s *SQLStore) Clear(ctx context.Context, collection string) error {
	query := s.db.Dialect.RewriteQuery("DELETE FROM documents WHERE collection = ?")

	if _, err := s.db.DB.ExecContext(ctx, query, collection); err != nil {
		return fmt.Errorf("failed to clear collection %s: %w", collection, err)
	}
	return nil
}

// GetAll retrieves every document in a collection keyed by document key
func (s *SQLStore) GetAll(ctx context.Context, collection string) (map[string][]byte, error) {
	query := s.db.Dialect.RewriteQuery(
		"SELECT doc_key, doc_value FROM documents WHERE collection = ?")

	rows, err := s.db.DB.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan document in %s: %w", collection, err)
		}
		result[key] = []byte(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}
	return result, nil
}

// Close closes the underlying database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}
