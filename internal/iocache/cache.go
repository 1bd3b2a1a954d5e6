// Package iocache stores null-distribution matrices in a Badger v4
// key-value store. Values are GOB-encoded nullmodel.Data.
package iocache

import (
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"github.com/gnames/tebreak/pkg/lifecycle"
	"github.com/gnames/tebreak/pkg/nullmodel"
)

// cacheManager keeps matrices at ~/.cache/tebreak/nullmodel by default.
type cacheManager struct {
	dir string
	db  *badger.DB
}

// New creates a cache manager for dir. The directory is created if it
// does not exist, existing entries are kept.
func New(dir string) (lifecycle.MatrixCache, error) {
	err := gnsys.MakeDir(dir)
	if err != nil {
		slog.Error("Cannot create cache directory", "error", err, "dir", dir)
		return nil, OpenError(dir, err)
	}
	return &cacheManager{dir: dir}, nil
}

// Open opens the Badger database.
func (c *cacheManager) Open() error {
	if c.db != nil {
		slog.Warn("Cache database is already open")
		return nil
	}

	options := badger.DefaultOptions(c.dir)
	options.Logger = nil

	db, err := badger.Open(options)
	if err != nil {
		slog.Error("Cannot open cache database", "error", err, "dir", c.dir)
		return OpenError(c.dir, err)
	}

	c.db = db
	slog.Info("Cache database opened", "dir", c.dir)
	return nil
}

// Close closes the Badger database.
func (c *cacheManager) Close() error {
	if c.db == nil {
		return nil
	}

	err := c.db.Close()
	c.db = nil
	if err != nil {
		slog.Error("Cannot close cache database", "error", err)
		return err
	}

	slog.Info("Cache database closed")
	return nil
}

// Get returns the matrix stored under key, or nil when there is none.
func (c *cacheManager) Get(key string) (*nullmodel.Matrix, error) {
	if c.db == nil {
		return nil, ReadError(key, errNotOpen)
	}

	var val []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		slog.Error("Cannot retrieve null model", "error", err, "key", key)
		return nil, ReadError(key, err)
	}
	if val == nil {
		return nil, nil
	}

	var enc gnfmt.GNgob
	var data nullmodel.Data
	if err = enc.Decode(val, &data); err != nil {
		slog.Error("Cannot decode null model", "error", err, "key", key)
		return nil, ReadError(key, err)
	}

	res, err := nullmodel.FromData(data)
	if err != nil {
		return nil, ReadError(key, err)
	}
	slog.Info("Null model found in cache",
		"key", key,
		"families", len(data.Families),
		"iterations", data.Iterations,
	)
	return res, nil
}

// Put stores m under key.
func (c *cacheManager) Put(key string, m *nullmodel.Matrix) error {
	if c.db == nil {
		return WriteError(key, errNotOpen)
	}

	var enc gnfmt.GNgob
	val, err := enc.Encode(m.Data())
	if err != nil {
		slog.Error("Cannot encode null model", "error", err, "key", key)
		return WriteError(key, err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), val)
	})
	if err != nil {
		slog.Error("Cannot store null model", "error", err, "key", key)
		return WriteError(key, err)
	}
	return nil
}

// Clean closes the database and removes all cached matrices.
func (c *cacheManager) Clean() error {
	if err := c.Close(); err != nil {
		return err
	}

	err := gnsys.CleanDir(c.dir)
	if err != nil {
		slog.Error("Cannot clean cache directory", "error", err, "dir", c.dir)
		return WriteError(c.dir, err)
	}

	slog.Info("Cache cleaned up", "dir", c.dir)
	return nil
}
