package trail

import (
	"testing"
)

func TestRecordBoundedFIFO(t *testing.T) {
	b := NewDefault()
	n := 3750
	for i := 0; i < n; i++ {
		b.Record(Point{X: float64(i), CreatedAt: int64(i)})
		if b.Len() > DefaultCapacity {
			t.Fatalf("len %d exceeds capacity after %d records", b.Len(), i+1)
		}
	}

	if b.Len() != DefaultCapacity {
		t.Fatalf("expected %d points, got %d", DefaultCapacity, b.Len())
	}

	pts := b.Points()
	first := n - DefaultCapacity
	for i, p := range pts {
		if int(p.X) != first+i {
			t.Fatalf("point %d: expected insertion %d, got %d", i, first+i, int(p.X))
		}
	}
}

func TestRecordBelowCapacity(t *testing.T) {
	b := New(10, 50, ExpireLazy)
	for i := 0; i < 4; i++ {
		b.Record(Point{X: float64(i)})
	}
	pts := b.Points()
	if len(pts) != 4 {
		t.Fatalf("expected 4 points, got %d", len(pts))
	}
	for i, p := range pts {
		if int(p.X) != i {
			t.Errorf("point %d out of order: %v", i, p.X)
		}
	}
}

func TestClear(t *testing.T) {
	b := New(5, 50, ExpireEager)
	for i := 0; i < 8; i++ {
		b.Record(Point{CreatedAt: int64(i)})
	}
	b.Clear()
	if b.Len() != 0 || len(b.Points()) != 0 {
		t.Errorf("expected empty buffer, got %d", b.Len())
	}

	b.Record(Point{X: 1})
	if b.Len() != 1 || b.Points()[0].X != 1 {
		t.Error("buffer unusable after clear")
	}
}

func TestLast(t *testing.T) {
	b := New(3, 50, ExpireEager)
	if _, ok := b.Last(); ok {
		t.Fatal("empty buffer should have no last point")
	}
	for i := 0; i < 5; i++ {
		b.Record(Point{CreatedAt: int64(i)})
	}
	last, ok := b.Last()
	if !ok || last.CreatedAt != 4 {
		t.Errorf("expected last tick 4, got %+v", last)
	}
}

func TestAlphaMonotonicInAge(t *testing.T) {
	b := NewDefault()
	p := Point{Brightness: 0.8}
	now := int64(1000)

	prev := 2.0
	for age := int64(0); age <= DefaultMaxAge+10; age++ {
		p.CreatedAt = now - age
		a := b.Alpha(p, now, 0.95)
		if a > prev {
			t.Fatalf("alpha increased at age %d: %f > %f", age, a, prev)
		}
		if age >= DefaultMaxAge && a != 0 {
			t.Fatalf("expected alpha 0 at age %d, got %f", age, a)
		}
		prev = a
	}

	p.CreatedAt = now
	if got := b.Alpha(p, now, 0.95); got != 0.8*0.95 {
		t.Errorf("fresh point alpha: expected %f, got %f", 0.8*0.95, got)
	}
}

func TestZeroPersistenceHidesTrail(t *testing.T) {
	b := NewDefault()
	for i := 0; i < 20; i++ {
		b.Record(Point{Brightness: 1, CreatedAt: int64(i)})
	}

	drawn := 0
	b.RenderAll(20, 0, func(Point, float64, float64) { drawn++ })
	if drawn != 0 {
		t.Errorf("expected no trail dots at persistence 0, got %d", drawn)
	}
}

func TestRenderAllEagerPrunes(t *testing.T) {
	b := New(100, 10, ExpireEager)
	for i := 0; i < 30; i++ {
		b.Record(Point{Brightness: 1, CreatedAt: int64(i)})
	}

	var ages []int64
	b.RenderAll(30, 1, func(p Point, alpha, radius float64) {
		ages = append(ages, 30-p.CreatedAt)
		if radius != 3 {
			t.Errorf("expected radius 3 for full brightness, got %f", radius)
		}
	})

	if b.Len() != 9 {
		t.Errorf("expected 9 live points after prune, got %d", b.Len())
	}
	// age 10 is expired, age 1..9 drawn oldest first
	if len(ages) != 9 || ages[0] != 9 || ages[len(ages)-1] != 1 {
		t.Errorf("unexpected drawn ages %v", ages)
	}
}

func TestRenderAllLazyKeepsExpired(t *testing.T) {
	b := New(100, 10, ExpireLazy)
	for i := 0; i < 30; i++ {
		b.Record(Point{Brightness: 1, CreatedAt: int64(i)})
	}

	drawn := 0
	b.RenderAll(30, 1, func(Point, float64, float64) { drawn++ })

	if b.Len() != 30 {
		t.Errorf("lazy policy should retain expired points, got %d", b.Len())
	}
	if drawn != 9 {
		t.Errorf("expected 9 visible points, got %d", drawn)
	}
}

func TestPrunePreservesOrder(t *testing.T) {
	b := New(8, 5, ExpireLazy)
	for i := 0; i < 12; i++ {
		b.Record(Point{X: float64(i), CreatedAt: int64(i)})
	}
	dropped := b.Prune(13)
	// retained ticks are 4..11; ages 9..5 are expired at tick 13
	if dropped != 5 {
		t.Errorf("expected 5 dropped, got %d", dropped)
	}
	if b.Len() != 3 {
		t.Errorf("expected 3 live points, got %d", b.Len())
	}
	pts := b.Points()
	for i := 1; i < len(pts); i++ {
		if pts[i].X <= pts[i-1].X {
			t.Fatalf("order broken at %d: %v", i, pts)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want ExpiryPolicy
		err  bool
	}{
		{"", ExpireEager, false},
		{"eager", ExpireEager, false},
		{"lazy", ExpireLazy, false},
		{"never", ExpireEager, true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, %v", tt.in, got, err)
		}
	}
}
