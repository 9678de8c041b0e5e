package trail

import "fmt"

const (
	DefaultCapacity = 3000
	DefaultMaxAge   = 200
)

// ExpiryPolicy decides what happens to points older than the max age.
type ExpiryPolicy int

const (
	// ExpireEager drops expired points from the head on every RenderAll.
	ExpireEager ExpiryPolicy = iota
	// ExpireLazy skips expired points when drawing but keeps them until FIFO
	// eviction overwrites them.
	ExpireLazy
)

func (p ExpiryPolicy) String() string {
	if p == ExpireLazy {
		return "lazy"
	}
	return "eager"
}

func ParsePolicy(s string) (ExpiryPolicy, error) {
	switch s {
	case "", "eager":
		return ExpireEager, nil
	case "lazy":
		return ExpireLazy, nil
	default:
		return ExpireEager, fmt.Errorf("unknown trail expiry policy: %s", s)
	}
}

// Point is one phosphor hit. X and Y are screen-plane offsets in meters.
type Point struct {
	X, Y       float64
	Brightness float64
	CreatedAt  int64
}

// Buffer is a fixed-capacity FIFO of trail points. It is not thread-safe.
type Buffer struct {
	points []Point
	head   int
	size   int
	maxAge int64
	policy ExpiryPolicy
}

func New(capacity, maxAge int, policy ExpiryPolicy) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Buffer{
		points: make([]Point, capacity),
		maxAge: int64(maxAge),
		policy: policy,
	}
}

func NewDefault() *Buffer {
	return New(DefaultCapacity, DefaultMaxAge, ExpireEager)
}

func (b *Buffer) Len() int             { return b.size }
func (b *Buffer) Capacity() int        { return len(b.points) }
func (b *Buffer) MaxAge() int64        { return b.maxAge }
func (b *Buffer) Policy() ExpiryPolicy { return b.policy }

// Record appends p, evicting the oldest point when the buffer is full.
func (b *Buffer) Record(p Point) {
	idx := (b.head + b.size) % len(b.points)
	b.points[idx] = p
	if b.size < len(b.points) {
		b.size++
		return
	}
	b.head = (b.head + 1) % len(b.points)
}

// Last returns the most recently recorded point.
func (b *Buffer) Last() (Point, bool) {
	if b.size == 0 {
		return Point{}, false
	}
	return b.points[(b.head+b.size-1)%len(b.points)], true
}

func (b *Buffer) Clear() {
	b.head = 0
	b.size = 0
}

// Points returns a copy of the retained points, oldest first.
func (b *Buffer) Points() []Point {
	out := make([]Point, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.points[(b.head+i)%len(b.points)]
	}
	return out
}

// Alpha is the fade factor of p at currentTick. It is non-increasing in age
// and zero once the point has expired.
func (b *Buffer) Alpha(p Point, currentTick int64, persistence float64) float64 {
	age := currentTick - p.CreatedAt
	if age < 0 {
		age = 0
	}
	if age >= b.maxAge {
		return 0
	}
	a := (1 - float64(age)/float64(b.maxAge)) * p.Brightness * persistence
	if a < 0 {
		return 0
	}
	return a
}

// Radius of the dot drawn for p, in pixels.
func Radius(p Point) float64 {
	return 1 + p.Brightness*2
}

// Prune drops expired points from the head. Points are recorded in tick
// order, so the expired ones are always the oldest.
func (b *Buffer) Prune(currentTick int64) int {
	dropped := 0
	for b.size > 0 {
		oldest := b.points[b.head]
		if currentTick-oldest.CreatedAt < b.maxAge {
			break
		}
		b.head = (b.head + 1) % len(b.points)
		b.size--
		dropped++
	}
	if b.size == 0 {
		b.head = 0
	}
	return dropped
}

// RenderAll calls draw for every live point, oldest first. Points whose alpha
// is zero are skipped.
func (b *Buffer) RenderAll(currentTick int64, persistence float64, draw func(p Point, alpha, radius float64)) {
	if b.policy == ExpireEager {
		b.Prune(currentTick)
	}
	for i := 0; i < b.size; i++ {
		p := b.points[(b.head+i)%len(b.points)]
		alpha := b.Alpha(p, currentTick, persistence)
		if alpha <= 0 {
			continue
		}
		draw(p, alpha, Radius(p))
	}
}
