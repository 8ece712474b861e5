// Package cache memoizes element tabulations by value: the element key,
// the derivative order and a hash of the point coordinates. A cache is
// owned by its caller; there is no process wide instance.
package cache

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/febasis/polynomial"
)

// Tabulator is an element that evaluates its basis at points.
type Tabulator interface {
	Key() string
	Tabulate(order int, pts [][]float64) (map[polynomial.MultiIndex]*mat.Dense, error)
}

type key struct {
	element string
	order   int
	points  uint64
	npts    int
}

// Tabulations is safe for concurrent use. Returned tables are shared and
// must not be modified.
type Tabulations struct {
	mu           sync.RWMutex
	entries      map[key]map[polynomial.MultiIndex]*mat.Dense
	hits, misses int
}

func NewTabulations() *Tabulations {
	return &Tabulations{entries: make(map[key]map[polynomial.MultiIndex]*mat.Dense)}
}

// PointsHash hashes the bit patterns of the coordinates, point by point.
func PointsHash(pts [][]float64) uint64 {
	var (
		d   = xxhash.New()
		buf [8]byte
	)
	for _, p := range pts {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(p)))
		_, _ = d.Write(buf[:])
		for _, x := range p {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}

// Tabulate returns the cached tabulation or computes and stores it.
func (c *Tabulations) Tabulate(el Tabulator, order int, pts [][]float64) (tab map[polynomial.MultiIndex]*mat.Dense, err error) {
	k := key{element: el.Key(), order: order, points: PointsHash(pts), npts: len(pts)}
	c.mu.RLock()
	tab, ok := c.entries[k]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return
	}
	if tab, err = el.Tabulate(order, pts); err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
	if prev, ok := c.entries[k]; ok {
		return prev, nil
	}
	c.entries[k] = tab
	return
}

// Stats reports cache hits and misses.
func (c *Tabulations) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

func (c *Tabulations) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *Tabulations) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[key]map[polynomial.MultiIndex]*mat.Dense)
	c.hits, c.misses = 0, 0
}
