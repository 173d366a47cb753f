package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/vecsift/vecsift/metadata"
	"github.com/vecsift/vecsift/model"
)

// Store is a SQLite-backed collection store.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// CollectionInfo describes one collection.
type CollectionInfo struct {
	Name  string
	Count int
}

// Open opens (creating if necessary) the store at path and ensures the
// schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, wrapError("open", errors.New("database path cannot be empty"))
	}

	// WAL + NORMAL sync is the usual balance of safety and concurrency;
	// busy_timeout waits for locks instead of failing immediately.
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, wrapError("open", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(2 * time.Hour)

	s := &Store{db: db}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, wrapError("open", err)
	}
	return s, nil
}

func (s *Store) createTables(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS collections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS records (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		collection_id INTEGER NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
		record_id TEXT NOT NULL,
		vector BLOB,
		metadata TEXT,
		document TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_records_collection ON records(collection_id);
	`
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the store. Further use returns ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) guard() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// CreateCollection creates a collection if it does not already exist.
func (s *Store) CreateCollection(ctx context.Context, name string) error {
	if err := s.guard(); err != nil {
		return wrapError("create collection", err)
	}
	if name == "" {
		return wrapError("create collection", errors.New("collection name cannot be empty"))
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO collections (name) VALUES (?) ON CONFLICT(name) DO NOTHING", name)
	return wrapError("create collection", err)
}

// ListCollections returns every collection with its record count, in
// creation order.
func (s *Store) ListCollections(ctx context.Context) ([]CollectionInfo, error) {
	if err := s.guard(); err != nil {
		return nil, wrapError("list collections", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.name, COUNT(r.seq)
		FROM collections c
		LEFT JOIN records r ON r.collection_id = c.id
		GROUP BY c.id
		ORDER BY c.id`)
	if err != nil {
		return nil, wrapError("list collections", err)
	}
	defer rows.Close()

	var infos []CollectionInfo
	for rows.Next() {
		var info CollectionInfo
		if err := rows.Scan(&info.Name, &info.Count); err != nil {
			return nil, wrapError("list collections", err)
		}
		infos = append(infos, info)
	}
	return infos, wrapError("list collections", rows.Err())
}

func (s *Store) collectionID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM collections WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %q", ErrCollectionNotFound, name)
	}
	return id, err
}

// Count returns the number of records in a collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	if err := s.guard(); err != nil {
		return 0, wrapError("count", err)
	}
	id, err := s.collectionID(ctx, collection)
	if err != nil {
		return 0, wrapError("count", err)
	}
	var n int
	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM records WHERE collection_id = ?", id).Scan(&n)
	return n, wrapError("count", err)
}

// Insert appends records to a collection. Duplicate record ids are
// stored as-is; surfacing them is the profiler's job.
func (s *Store) Insert(ctx context.Context, collection string, recs ...model.Record) error {
	if err := s.guard(); err != nil {
		return wrapError("insert", err)
	}
	id, err := s.collectionID(ctx, collection)
	if err != nil {
		return wrapError("insert", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapError("insert", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (collection_id, record_id, vector, metadata, document)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return wrapError("insert", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if rec.ID == "" {
			return wrapError("insert", errors.New("record id cannot be empty"))
		}
		metaJSON, err := encodeMetadata(rec.Metadata)
		if err != nil {
			return wrapError("insert", fmt.Errorf("record %q: %w", rec.ID, err))
		}
		if _, err := stmt.ExecContext(ctx, id, rec.ID, encodeVector(rec.Vector), metaJSON, rec.Document); err != nil {
			return wrapError("insert", fmt.Errorf("record %q: %w", rec.ID, err))
		}
	}
	return wrapError("insert", tx.Commit())
}

// FetchAll materializes the whole collection as one batch, in insertion
// order. The caller owns the batch for the duration of its run.
func (s *Store) FetchAll(ctx context.Context, collection string) (*model.Batch, error) {
	if err := s.guard(); err != nil {
		return nil, wrapError("fetch", err)
	}
	id, err := s.collectionID(ctx, collection)
	if err != nil {
		return nil, wrapError("fetch", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT record_id, vector, metadata, document
		FROM records WHERE collection_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, wrapError("fetch", err)
	}
	defer rows.Close()

	var (
		ids     []string
		vectors [][]float32
		metas   []metadata.Document
		docs    []string
	)
	for rows.Next() {
		var (
			recID    string
			blob     []byte
			metaJSON sql.NullString
			doc      string
		)
		if err := rows.Scan(&recID, &blob, &metaJSON, &doc); err != nil {
			return nil, wrapError("fetch", err)
		}

		vec, err := decodeVector(blob)
		if err != nil {
			return nil, wrapError("fetch", fmt.Errorf("record %q: %w", recID, err))
		}
		meta, err := decodeMetadata(metaJSON)
		if err != nil {
			return nil, wrapError("fetch", fmt.Errorf("record %q: %w", recID, err))
		}

		ids = append(ids, recID)
		vectors = append(vectors, vec)
		metas = append(metas, meta)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("fetch", err)
	}

	batch, err := model.NewBatch(ids, vectors, metas, docs)
	return batch, wrapError("fetch", err)
}

func encodeMetadata(d metadata.Document) (sql.NullString, error) {
	if d == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(d)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeMetadata(ns sql.NullString) (metadata.Document, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var d metadata.Document
	if err := json.Unmarshal([]byte(ns.String), &d); err != nil {
		return nil, err
	}
	return d, nil
}
