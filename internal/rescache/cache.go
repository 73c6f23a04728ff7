// Package rescache caches render resources (textures, fonts, shaders,
// buffers) in an arena of slots behind generation-checked handles.
// Released resources park in per-kind bounded pools so a prompt
// re-request resurrects them instead of re-running the creator, and a
// byte budget is enforced by escalating from stale cleanup through pool
// flush to last-access eviction.
package rescache

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// slot is one arena entry. Pooled slots keep their id and payload so a
// later Get can resurrect them; free slots hold nothing but their next
// generation.
type slot struct {
	generation uint32
	inUse      bool
	kind       Kind
	id         string
	payload    any
	size       int64
	destroy    func()

	refs       atomic.Int32
	lastAccess atomic.Int64
}

// Config configures pooling and the memory budget.
type Config struct {
	// PoolSize bounds each kind's released-resource pool. Overflow
	// destroys the oldest pooled entry.
	PoolSize int

	// StaleAfter is the age at which an unaccessed resource counts as
	// stale during memory-limit enforcement.
	StaleAfter time.Duration

	// MemoryLimit caps total bytes held, live plus pooled. Zero means
	// unlimited.
	MemoryLimit int64
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		PoolSize:   16,
		StaleAfter: 5 * time.Minute,
	}
}

// Cache is the resource cache. Lookups take the shared lock; insert,
// release, and eviction take the exclusive lock, so a loader thread can
// populate while the render thread resolves.
type Cache struct {
	closed atomic.Bool

	mu     sync.RWMutex
	config Config
	slots  []*slot
	free   []uint32
	byID   map[string]uint32
	pools  [kindCount][]uint32

	bytesInUse int64

	allocated  atomic.Uint64
	freed      atomic.Uint64
	poolHits   atomic.Uint64
	poolMisses atomic.Uint64
}

// New creates an empty cache.
func New(config Config) *Cache {
	if config.PoolSize <= 0 {
		config.PoolSize = 16
	}
	if config.StaleAfter <= 0 {
		config.StaleAfter = 5 * time.Minute
	}
	return &Cache{
		config: config,
		byID:   make(map[string]uint32),
	}
}

// Get returns a handle for the resource, creating it if needed. A live
// resource is a hit: same handle, access time bumped, reference count
// incremented. On a miss the kind's release pool is checked first; only
// when no pooled copy exists does the creator run.
func (c *Cache) Get(kind Kind, id string, creator Creator) (Handle, error) {
	if kind >= kindCount {
		return Handle{}, fmt.Errorf("get %q: unknown kind %d", id, kind)
	}
	if c.closed.Load() {
		return Handle{}, fmt.Errorf("get %q: cache closed", id)
	}

	now := time.Now().UnixNano()

	c.mu.RLock()
	if idx, ok := c.byID[id]; ok {
		s := c.slots[idx]
		if s.kind != kind {
			c.mu.RUnlock()
			return Handle{}, fmt.Errorf("get %q: cached as %s, requested %s", id, s.kind, kind)
		}
		s.refs.Add(1)
		s.lastAccess.Store(now)
		h := Handle{index: idx, generation: s.generation}
		c.mu.RUnlock()
		return h, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return Handle{}, fmt.Errorf("get %q: cache closed", id)
	}

	// Another thread may have inserted between the locks.
	if idx, ok := c.byID[id]; ok {
		s := c.slots[idx]
		if s.kind != kind {
			return Handle{}, fmt.Errorf("get %q: cached as %s, requested %s", id, s.kind, kind)
		}
		s.refs.Add(1)
		s.lastAccess.Store(now)
		return Handle{index: idx, generation: s.generation}, nil
	}

	// A released copy may still sit in the kind's pool.
	if idx, ok := c.takeFromPoolLocked(kind, id); ok {
		s := c.slots[idx]
		s.inUse = true
		s.refs.Store(1)
		s.lastAccess.Store(now)
		c.byID[id] = idx
		c.poolHits.Add(1)
		return Handle{index: idx, generation: s.generation}, nil
	}
	c.poolMisses.Add(1)

	if creator == nil {
		return Handle{}, fmt.Errorf("get %q: no creator", id)
	}
	res, err := creator(id)
	if err != nil {
		return Handle{}, fmt.Errorf("create %s %q: %w", kind, id, err)
	}

	idx := c.allocSlotLocked()
	s := c.slots[idx]
	s.inUse = true
	s.kind = kind
	s.id = id
	s.payload = res.Payload
	s.size = res.Size
	s.destroy = res.Destroy
	s.refs.Store(1)
	s.lastAccess.Store(now)
	c.byID[id] = idx

	c.allocated.Add(1)
	c.bytesInUse += res.Size
	c.enforceLocked(int(idx))

	return Handle{index: idx, generation: s.generation}, nil
}

// GetTexture is Get with KindTexture.
func (c *Cache) GetTexture(id string, creator Creator) (Handle, error) {
	return c.Get(KindTexture, id, creator)
}

// GetFont is Get with KindFont.
func (c *Cache) GetFont(id string, creator Creator) (Handle, error) {
	return c.Get(KindFont, id, creator)
}

// GetShader is Get with KindShader.
func (c *Cache) GetShader(id string, creator Creator) (Handle, error) {
	return c.Get(KindShader, id, creator)
}

// GetBuffer is Get with KindBuffer.
func (c *Cache) GetBuffer(id string, creator Creator) (Handle, error) {
	return c.Get(KindBuffer, id, creator)
}

// Resolve returns the payload behind a handle. It fails once the slot
// has been released or recycled, even if the same id was since recreated.
func (c *Cache) Resolve(h Handle) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if int(h.index) >= len(c.slots) {
		return nil, false
	}
	s := c.slots[h.index]
	if !s.inUse || s.generation != h.generation {
		return nil, false
	}
	s.lastAccess.Store(time.Now().UnixNano())
	return s.payload, true
}

// Has reports whether a live resource exists under the id. Pooled
// resources do not count.
func (c *Cache) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.byID[id]
	return ok
}

// Release drops one reference. The last release parks the resource in
// its kind's pool, invalidating outstanding handles. Unknown ids return
// false.
func (c *Cache) Release(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.byID[id]
	if !ok {
		return false
	}
	s := c.slots[idx]
	if s.refs.Add(-1) > 0 {
		return true
	}
	c.releaseToPoolLocked(idx)
	return true
}

// CleanupStale releases every resource unaccessed for longer than
// timeout to its pool and returns how many it released. A non-positive
// timeout uses the configured StaleAfter.
func (c *Cache) CleanupStale(timeout time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	released, _ := c.cleanupStaleLocked(timeout, -1)
	return released
}

// SetMemoryLimit replaces the byte budget and enforces it immediately.
// A non-positive limit disables the budget.
func (c *Cache) SetMemoryLimit(bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.MemoryLimit = bytes
	c.enforceLocked(-1)
}

// EnforceMemoryLimit brings usage back under the budget, mildest step
// first: stale resources to pool, then pool flush, then live resources
// least recently accessed first. Returns how many resources were
// destroyed.
func (c *Cache) EnforceMemoryLimit() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enforceLocked(-1)
}

// Close destroys every live and pooled resource. Idempotent.
func (c *Cache) Close() {
	if c.closed.Swap(true) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.pools {
		for _, idx := range c.pools[k] {
			c.destroySlotLocked(idx)
		}
		c.pools[k] = nil
	}
	for idx := range c.slots {
		if c.slots[idx].inUse {
			c.destroySlotLocked(uint32(idx))
		}
	}
	c.slots = nil
	c.free = nil
	c.byID = make(map[string]uint32)
}

// Stats holds cache statistics.
type Stats struct {
	Allocated   uint64
	Freed       uint64
	PoolHits    uint64
	PoolMisses  uint64
	Active      map[Kind]int
	Pooled      map[Kind]int
	BytesInUse  int64
	MemoryLimit int64
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache) Stats() Stats {
	st := Stats{
		Allocated:  c.allocated.Load(),
		Freed:      c.freed.Load(),
		PoolHits:   c.poolHits.Load(),
		PoolMisses: c.poolMisses.Load(),
		Active:     make(map[Kind]int, kindCount),
		Pooled:     make(map[Kind]int, kindCount),
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, idx := range c.byID {
		st.Active[c.slots[idx].kind]++
	}
	for k := range c.pools {
		if n := len(c.pools[k]); n > 0 {
			st.Pooled[Kind(k)] = n
		}
	}
	st.BytesInUse = c.bytesInUse
	st.MemoryLimit = c.config.MemoryLimit
	return st
}

// allocSlotLocked hands back a free slot index, growing the arena when
// none are free. Recycled slots keep the generation advanced by their
// previous destruction.
func (c *Cache) allocSlotLocked() uint32 {
	if n := len(c.free); n > 0 {
		idx := c.free[n-1]
		c.free = c.free[:n-1]
		return idx
	}
	c.slots = append(c.slots, &slot{generation: 1})
	return uint32(len(c.slots) - 1)
}

// takeFromPoolLocked removes and returns the pooled slot holding id, if
// any. Pools are small, bounded by PoolSize, so a linear scan is fine.
func (c *Cache) takeFromPoolLocked(kind Kind, id string) (uint32, bool) {
	pool := c.pools[kind]
	for i, idx := range pool {
		if c.slots[idx].id != id {
			continue
		}
		c.pools[kind] = append(pool[:i], pool[i+1:]...)
		return idx, true
	}
	return 0, false
}

// releaseToPoolLocked parks a live slot in its kind's pool, bumping the
// generation so outstanding handles stop resolving. Pool overflow
// destroys the oldest pooled entry; the return value is how many slots
// that destroyed.
func (c *Cache) releaseToPoolLocked(idx uint32) int {
	s := c.slots[idx]
	delete(c.byID, s.id)
	s.inUse = false
	s.generation++
	s.refs.Store(0)

	k := s.kind
	c.pools[k] = append(c.pools[k], idx)
	if len(c.pools[k]) <= c.config.PoolSize {
		return 0
	}
	victim := c.pools[k][0]
	c.pools[k] = append(c.pools[k][:0], c.pools[k][1:]...)
	c.destroySlotLocked(victim)
	return 1
}

// destroySlotLocked runs the destroy callback, updates accounting, and
// returns the slot to the free list. The caller must already have taken
// the slot out of any pool.
func (c *Cache) destroySlotLocked(idx uint32) {
	s := c.slots[idx]
	if s.inUse {
		delete(c.byID, s.id)
	}
	if s.destroy != nil {
		s.destroy()
	}
	c.bytesInUse -= s.size
	c.freed.Add(1)

	s.inUse = false
	s.generation++
	s.id = ""
	s.payload = nil
	s.size = 0
	s.destroy = nil
	s.refs.Store(0)
	c.free = append(c.free, idx)
}

// cleanupStaleLocked releases every slot unaccessed past the timeout to
// its pool, skipping the keep index. Returns slots released and slots
// destroyed by pool overflow.
func (c *Cache) cleanupStaleLocked(timeout time.Duration, keep int) (released, destroyed int) {
	if timeout <= 0 {
		timeout = c.config.StaleAfter
	}
	cutoff := time.Now().Add(-timeout).UnixNano()

	for idx, s := range c.slots {
		if !s.inUse || idx == keep {
			continue
		}
		if s.lastAccess.Load() > cutoff {
			continue
		}
		destroyed += c.releaseToPoolLocked(uint32(idx))
		released++
	}
	return released, destroyed
}

// flushPoolsLocked destroys every pooled resource.
func (c *Cache) flushPoolsLocked() int {
	n := 0
	for k := range c.pools {
		for _, idx := range c.pools[k] {
			c.destroySlotLocked(idx)
			n++
		}
		c.pools[k] = nil
	}
	return n
}

// enforceLocked escalates until usage is back under the budget. The
// keep index, the resource being handed out right now, is never
// destroyed.
func (c *Cache) enforceLocked(keep int) int {
	limit := c.config.MemoryLimit
	if limit <= 0 || c.bytesInUse <= limit {
		return 0
	}

	_, destroyed := c.cleanupStaleLocked(c.config.StaleAfter, keep)
	if c.bytesInUse <= limit {
		return destroyed
	}

	destroyed += c.flushPoolsLocked()
	if c.bytesInUse <= limit {
		return destroyed
	}

	type victim struct {
		idx    uint32
		access int64
	}
	victims := make([]victim, 0, len(c.byID))
	for idx, s := range c.slots {
		if !s.inUse || idx == keep {
			continue
		}
		victims = append(victims, victim{uint32(idx), s.lastAccess.Load()})
	}
	sort.Slice(victims, func(i, j int) bool { return victims[i].access < victims[j].access })

	for _, v := range victims {
		if c.bytesInUse <= limit {
			break
		}
		c.destroySlotLocked(v.idx)
		destroyed++
	}
	return destroyed
}
