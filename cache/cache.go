// Package cache stores solve results keyed by maze contents so repeated
// requests for the same maze skip the search.
//
// Two Store implementations are provided: MemoryStore for a single process
// and RedisStore for instances sharing a Redis server. RedisStore also
// implements Locker so only one instance solves a given maze at a time.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"

	"github.com/katalvlaran/lvmaze/maze"
	"github.com/katalvlaran/lvmaze/template"
)

// KeyPrefix namespaces every key written by this package.
const KeyPrefix = "lvmaze:solve:"

// ErrLockNotAcquired is returned by Locker when the lock is held elsewhere.
var ErrLockNotAcquired = errors.New("cache: lock not acquired")

// Entry is one cached solve result.
type Entry struct {
	Found    bool         `json:"found"`
	Path     []maze.Coord `json:"path"`
	Searched int          `json:"searched"`
	Before   string       `json:"before"`
	After    string       `json:"after"`
}

// Store gets and puts entries by key.
type Store interface {
	// Get returns the entry for key and whether it was present.
	Get(ctx context.Context, key string) (Entry, bool, error)
	// Put stores e under key, replacing any existing entry.
	Put(ctx context.Context, key string, e Entry) error
}

// Locker serializes work on a key across processes.
type Locker interface {
	// Lock blocks until the key is locked or ctx is done, and returns the
	// function that releases it.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// canonical is the hashed form of a maze: in-bounds walls sorted and
// deduplicated, plus everything that changes the search outcome.
type canonical struct {
	Rows    int          `json:"rows"`
	Cols    int          `json:"cols"`
	Walls   []maze.Coord `json:"walls"`
	Start   maze.Coord   `json:"start"`
	End     maze.Coord   `json:"end"`
	Variant string       `json:"variant"`
}

// Key derives a stable key for t applied to a cfg-sized grid. variant
// distinguishes solver settings that change the resulting path (for example
// pruning). Wall order, duplicates and out-of-bounds walls do not affect the key.
func Key(t template.Template, cfg maze.Config, variant string) string {
	seen := make(map[maze.Coord]struct{}, len(t.Walls))
	walls := make([]maze.Coord, 0, len(t.Walls))
	for _, w := range t.Walls {
		if w.Row < 0 || w.Row >= cfg.Rows || w.Col < 0 || w.Col >= cfg.Cols {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		walls = append(walls, w)
	}
	sort.Slice(walls, func(i, j int) bool {
		if walls[i].Row != walls[j].Row {
			return walls[i].Row < walls[j].Row
		}
		return walls[i].Col < walls[j].Col
	})

	data, _ := json.Marshal(canonical{
		Rows:    cfg.Rows,
		Cols:    cfg.Cols,
		Walls:   walls,
		Start:   t.Start,
		End:     t.End,
		Variant: variant,
	})
	sum := sha256.Sum256(data)

	return KeyPrefix + hex.EncodeToString(sum[:])
}
