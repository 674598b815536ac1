package bag

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/hupe1980/tetrix/core"
)

// Generator produces kinds using the seven-bag system: each bag holds every
// kind once in shuffled order.
type Generator struct {
	rng *rand.Rand
	bag []core.ShapeKind
}

// NewGenerator creates a seeded seven-bag generator.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: newRand(seed)}
}

// NextShape returns the next kind from the bag.
func (g *Generator) NextShape() core.ShapeKind {
	if len(g.bag) == 0 {
		g.refill()
	}
	k := g.bag[0]
	g.bag = g.bag[1:]
	return k
}

// Peek returns the next kind without consuming it.
func (g *Generator) Peek() core.ShapeKind {
	if len(g.bag) == 0 {
		g.refill()
	}
	return g.bag[0]
}

func (g *Generator) refill() {
	g.bag = append(g.bag[:0], core.Shapes[:]...)
	g.rng.Shuffle(len(g.bag), func(i, j int) {
		g.bag[i], g.bag[j] = g.bag[j], g.bag[i]
	})
}

// Uniform draws every kind independently with equal probability.
type Uniform struct {
	rng *rand.Rand
}

// NewUniform creates a seeded uniform provider.
func NewUniform(seed int64) *Uniform { return &Uniform{rng: newRand(seed)} }

// NextShape returns a uniformly drawn kind.
func (u *Uniform) NextShape() core.ShapeKind {
	return core.Shapes[u.rng.IntN(len(core.Shapes))]
}

// Sequence cycles through a fixed list of kinds.
type Sequence struct {
	kinds []core.ShapeKind
	next  int
}

// NewSequence returns a provider repeating kinds in order. It panics when
// kinds is empty or holds NoShape.
func NewSequence(kinds ...core.ShapeKind) *Sequence {
	if len(kinds) == 0 {
		panic("bag: empty sequence")
	}
	for _, k := range kinds {
		if !k.Valid() {
			panic(fmt.Sprintf("bag: invalid shape %s in sequence", k))
		}
	}
	return &Sequence{kinds: append([]core.ShapeKind(nil), kinds...)}
}

// NextShape returns the next kind of the cycle.
func (s *Sequence) NextShape() core.ShapeKind {
	k := s.kinds[s.next]
	s.next = (s.next + 1) % len(s.kinds)
	return k
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}
