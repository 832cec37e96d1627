package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hupe1980/slotvec"
	"github.com/hupe1980/slotvec/blobstore"
	"golang.org/x/sync/errgroup"
)

// Ext is appended to every snapshot name to form its store key. Keys without
// it are not snapshots and are ignored by List, LoadLatest and Prune.
const Ext = ".slv"

// ErrNoSnapshot is returned by LoadLatest when the store holds no snapshot.
var ErrNoSnapshot = errors.New("snapshot: no snapshot found")

// NameAt returns a snapshot name for t. Names for later times sort after
// names for earlier times.
func NameAt(t time.Time) string {
	return t.UTC().Format("20060102T150405.000000000Z")
}

// Manager saves and loads snapshots of Vector[T] in a blobstore.Store.
// Snapshot names are expected to sort by age, oldest first; NameAt
// produces such names. A Manager is safe for concurrent use.
type Manager[T any] struct {
	store blobstore.Store
	opts  options
}

// NewManager creates a Manager on store.
func NewManager[T any](store blobstore.Store, optFns ...Option) *Manager[T] {
	return &Manager[T]{
		store: store,
		opts:  applyOptions(optFns),
	}
}

func (m *Manager[T]) key(name string) string { return m.opts.prefix + name + Ext }

// Save encodes v and stores it under name. With WithKeep set, older
// snapshots beyond the limit are pruned afterwards.
func (m *Manager[T]) Save(ctx context.Context, name string, v *slotvec.Vector[T]) error {
	start := time.Now()

	var buf bytes.Buffer
	_, err := Encode(&buf, v, WithCodec(m.opts.codec), WithCompression(m.opts.compression))
	if err == nil {
		err = m.store.Put(ctx, m.key(name), buf.Bytes())
	}

	m.opts.metrics.RecordSave(buf.Len(), time.Since(start), err)
	m.opts.logger.WithName(name).LogSave(ctx, v.Len(), buf.Len(), err)
	if err != nil {
		return fmt.Errorf("snapshot: save %q: %w", name, err)
	}

	if m.opts.keep > 0 {
		if _, err := m.Prune(ctx, m.opts.keep); err != nil {
			return err
		}
	}
	return nil
}

// Load reads and decodes the snapshot stored under name.
func (m *Manager[T]) Load(ctx context.Context, name string) (*slotvec.Vector[T], error) {
	start := time.Now()

	data, err := m.store.Get(ctx, m.key(name))
	var v *slotvec.Vector[T]
	if err == nil {
		v, err = Decode[T](bytes.NewReader(data), WithCodec(m.opts.codec))
	}

	m.opts.metrics.RecordLoad(len(data), time.Since(start), err)
	count := 0
	if v != nil {
		count = v.Count()
	}
	m.opts.logger.WithName(name).LogLoad(ctx, count, err)
	if err != nil {
		return nil, fmt.Errorf("snapshot: load %q: %w", name, err)
	}
	return v, nil
}

// LoadLatest loads the snapshot whose name sorts last.
func (m *Manager[T]) LoadLatest(ctx context.Context) (*slotvec.Vector[T], error) {
	names, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoSnapshot
	}
	return m.Load(ctx, names[len(names)-1])
}

// List returns the snapshot names under the Manager prefix, oldest first.
func (m *Manager[T]) List(ctx context.Context) ([]string, error) {
	keys, err := m.store.List(ctx, m.opts.prefix)
	if err != nil {
		return nil, fmt.Errorf("snapshot: list: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		name, ok := strings.CutSuffix(strings.TrimPrefix(k, m.opts.prefix), Ext)
		if !ok || name == "" {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Prune deletes all but the newest keep snapshots and returns how many were
// deleted. Deletes run concurrently; the first error cancels the rest.
func (m *Manager[T]) Prune(ctx context.Context, keep int) (int, error) {
	start := time.Now()
	keep = max(keep, 0)

	names, err := m.List(ctx)
	if err != nil {
		m.opts.logger.LogPrune(ctx, 0, err)
		return 0, err
	}
	if len(names) <= keep {
		return 0, nil
	}

	var deleted atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.parallelism)
	for _, name := range names[:len(names)-keep] {
		g.Go(func() error {
			if err := m.store.Delete(gctx, m.key(name)); err != nil {
				return fmt.Errorf("delete %q: %w", name, err)
			}
			deleted.Add(1)
			return nil
		})
	}
	err = g.Wait()

	n := int(deleted.Load())
	m.opts.metrics.RecordPrune(n, time.Since(start), err)
	m.opts.logger.LogPrune(ctx, n, err)
	if err != nil {
		return n, fmt.Errorf("snapshot: prune: %w", err)
	}
	return n, nil
}
