/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/mikeb26/pingpong-tdbot/bracket"
	"github.com/mikeb26/pingpong-tdbot/internal"
	"github.com/mikeb26/pingpong-tdbot/s3cache"
)

var ErrNotFound = errors.New("tournament not found")

const (
	keyPrefix = "tournament/"
	indexKey  = "index"
)

// lister is implemented by backends that can enumerate their keys.
type lister interface {
	Keys(prefix string) ([]string, error)
}

// putter is implemented by backends that can report write failures.
type putter interface {
	Put(key string, data []byte) error
}

// Store persists tournaments as JSON documents in an httpcache.Cache
// backend, one entry per tournament name. Backends that cannot enumerate
// their keys get an index entry listing the saved names.
type Store struct {
	cache        httpcache.Cache
	historyLimit int
}

func New(cache httpcache.Cache, historyLimit int) *Store {
	return &Store{
		cache:        cache,
		historyLimit: historyLimit,
	}
}

// Open returns a Store on the backend selected by cfg.
func Open(ctx context.Context, cfg *internal.Config) (*Store, error) {
	switch cfg.Store {
	case internal.StoreMemory:
		return New(httpcache.NewMemoryCache(), cfg.HistoryLimit), nil
	case internal.StoreS3:
		cache := s3cache.New(ctx, cfg.Bucket, cfg.Gzip, true)
		if err := cache.Init(); err != nil {
			return nil, fmt.Errorf("unable to open tournament store: %w", err)
		}
		return New(cache, cfg.HistoryLimit), nil
	case internal.StoreDisk, "":
		dir := filepath.Join(cfg.Dir, "tournaments")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("unable to create %v: %w", dir, err)
		}
		return New(diskcache.New(dir), cfg.HistoryLimit), nil
	}

	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// ID is the case-insensitive identity of a tournament name.
func ID(name string) string {
	return strings.ToLower(internal.NormalizeName(name))
}

func key(name string) string {
	return keyPrefix + url.PathEscape(ID(name))
}

// Load returns the named tournament or ErrNotFound.
func (s *Store) Load(name string) (*bracket.Tournament, error) {
	data, ok := s.cache.Get(key(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	t := bracket.NewTournament(name, s.historyLimit)
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("unable to decode tournament %q: %w", name, err)
	}

	return t, nil
}

// LoadOrNew returns the named tournament, or a fresh empty one when none
// has been saved yet.
func (s *Store) LoadOrNew(name string) (*bracket.Tournament, error) {
	t, err := s.Load(name)
	if errors.Is(err, ErrNotFound) {
		return bracket.NewTournament(internal.NormalizeName(name),
			s.historyLimit), nil
	}

	return t, err
}

func (s *Store) Save(t *bracket.Tournament) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("unable to encode tournament %q: %w", t.Name, err)
	}
	if err := s.put(key(t.Name), data); err != nil {
		return fmt.Errorf("unable to save tournament %q: %w", t.Name, err)
	}

	return s.updateIndex(func(ids []string) []string {
		return append(ids, ID(t.Name))
	})
}

func (s *Store) Delete(name string) error {
	s.cache.Delete(key(name))

	return s.updateIndex(func(ids []string) []string {
		return slices.DeleteFunc(ids, func(id string) bool {
			return id == ID(name)
		})
	})
}

// List returns the IDs of the saved tournaments in sorted order.
func (s *Store) List() ([]string, error) {
	if l, ok := s.cache.(lister); ok {
		keys, err := l.Keys(keyPrefix)
		if err != nil {
			return nil, err
		}
		var ids []string
		for _, k := range keys {
			id, err := url.PathUnescape(strings.TrimPrefix(k, keyPrefix))
			if err != nil {
				continue
			}
			ids = append(ids, id)
		}
		slices.Sort(ids)
		return ids, nil
	}

	return s.readIndex()
}

func (s *Store) put(k string, data []byte) error {
	if p, ok := s.cache.(putter); ok {
		return p.Put(k, data)
	}
	s.cache.Set(k, data)

	return nil
}

func (s *Store) readIndex() ([]string, error) {
	data, ok := s.cache.Get(indexKey)
	if !ok {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("unable to decode tournament index: %w", err)
	}

	return ids, nil
}

func (s *Store) updateIndex(fn func(ids []string) []string) error {
	if _, ok := s.cache.(lister); ok {
		return nil
	}
	ids, err := s.readIndex()
	if err != nil {
		return err
	}
	ids = fn(ids)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("unable to encode tournament index: %w", err)
	}

	return s.put(indexKey, data)
}
