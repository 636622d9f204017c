package tectonics

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetgen/pkg/region"
)

// Clustering errors.
var (
	ErrNoPlates           = errors.New("plate count must be positive")
	ErrTooManyPlates      = errors.New("more plates than regions")
	ErrUnreachableRegions = errors.New("unreachable regions remain")
	ErrPartition          = errors.New("plates do not partition regions")
)

// UnreachableError reports the regions no plate could grow into.
type UnreachableError struct {
	Remaining []int // region indices still queued, head first
	Assigned  int
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("%v: %d regions border no plate after %d were assigned",
		ErrUnreachableRegions, len(e.Remaining), e.Assigned)
}

func (e *UnreachableError) Unwrap() error {
	return ErrUnreachableRegions
}

// Rand is the random stream consumed by Cluster. *rand.Rand satisfies it.
type Rand interface {
	Float32() float32
	NormFloat64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a PCG-backed generator; equal seeds give equal streams.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// Cluster partitions regions into numPlates plates.
//
// Every plate is seeded with one random region. Remaining regions are taken in
// random order and each joins the first plate, in the current plate order, whose
// boundary it touches; the plate order is reshuffled after every join. A region
// touching no plate is deferred to the front of the queue. If a full pass over
// the queue makes no progress, an *UnreachableError is returned.
func Cluster(rng Rand, regions []region.Region, numPlates int) ([]*Plate, error) {
	if len(regions) == 0 && numPlates == 0 {
		return nil, nil
	}
	if numPlates <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoPlates, numPlates)
	}
	if numPlates > len(regions) {
		return nil, fmt.Errorf("%w: %d plates, %d regions", ErrTooManyPlates, numPlates, len(regions))
	}

	plates := make([]*Plate, numPlates)
	for i := range plates {
		plates[i] = newPlate(classify(rng.Float32()))
	}
	for _, p := range plates {
		p.MotionAxis = randomAxis(rng)
	}

	order := make([]int, len(regions))
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	q := &workQueue{back: order}
	for _, p := range plates {
		idx := q.pop()
		p.absorb(idx, &regions[idx])
	}

	assigned := numPlates
	misses := 0
	for q.len() > 0 {
		idx := q.pop()
		r := &regions[idx]

		var owner *Plate
		for _, p := range plates {
			if p.Touches(r) {
				owner = p
				break
			}
		}

		if owner == nil {
			q.pushFront(idx)
			misses++
			if misses >= q.len() {
				return nil, &UnreachableError{Remaining: q.items(), Assigned: assigned}
			}
			continue
		}

		owner.absorb(idx, r)
		assigned++
		misses = 0
		rng.Shuffle(len(plates), func(i, j int) { plates[i], plates[j] = plates[j], plates[i] })
	}

	return plates, nil
}

// randomAxis draws a uniformly distributed unit vector.
func randomAxis(rng Rand) mgl64.Vec3 {
	v := mgl64.Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return mgl64.Vec3{0, 0, 1}
}

// Partition checks that every index in 0..regionCount belongs to exactly one plate.
func Partition(plates []*Plate, regionCount int) error {
	owner := make([]int, regionCount)
	for i := range owner {
		owner[i] = -1
	}

	for pi, p := range plates {
		for _, idx := range p.Regions {
			if idx < 0 || idx >= regionCount {
				return fmt.Errorf("%w: plate %d holds region %d outside 0..%d", ErrPartition, pi, idx, regionCount)
			}
			if owner[idx] >= 0 {
				return fmt.Errorf("%w: region %d in plates %d and %d", ErrPartition, idx, owner[idx], pi)
			}
			owner[idx] = pi
		}
	}

	for idx, pi := range owner {
		if pi < 0 {
			return fmt.Errorf("%w: region %d unassigned", ErrPartition, idx)
		}
	}
	return nil
}

// workQueue is a deque of region indices: pop takes the tail, pushFront adds at the head.
type workQueue struct {
	front []int // pushed-front items, most recent last; front[0] is nearest the tail
	back  []int // original order, tail last
}

func (q *workQueue) len() int {
	return len(q.front) + len(q.back)
}

func (q *workQueue) pop() int {
	if n := len(q.back); n > 0 {
		idx := q.back[n-1]
		q.back = q.back[:n-1]
		return idx
	}
	idx := q.front[0]
	q.front = q.front[1:]
	return idx
}

func (q *workQueue) pushFront(idx int) {
	q.front = append(q.front, idx)
}

// items returns the queue contents head first.
func (q *workQueue) items() []int {
	out := make([]int, 0, q.len())
	for i := len(q.front) - 1; i >= 0; i-- {
		out = append(out, q.front[i])
	}
	return append(out, q.back...)
}
