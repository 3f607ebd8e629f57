package database

import (
	"slices"
	"testing"

	"github.com/papapumpkin/neo/internal/model"
)

func farther(au float64) PredicateFunc {
	return func(a *model.Approach) bool { return a.Distance >= au }
}

func faster(kms float64) PredicateFunc {
	return func(a *model.Approach) bool { return a.Velocity >= kms }
}

// hazardous treats an unlinked approach as not matching.
var hazardous = PredicateFunc(func(a *model.Approach) bool {
	return a.Body() != nil && a.Body().Hazardous
})

func TestQuery_Empty(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	db, err := New(f.bodies, f.approaches)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := slices.Collect(db.Query())
	if !slices.Equal(got, f.approaches) {
		t.Errorf("Query() = %v, want every approach in storage order", got)
	}
	if db.Len() != len(f.approaches) {
		t.Errorf("Len() = %d, want %d", db.Len(), len(f.approaches))
	}
}

func TestQuery_SinglePredicate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	db, err := New(f.bodies, f.approaches)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	p := farther(0.15)
	got := slices.Collect(db.Query(p))

	var want []*model.Approach
	for _, a := range f.approaches {
		if p(a) {
			want = append(want, a)
		}
	}
	if !slices.Equal(got, want) {
		t.Errorf("Query(p) = %v, want %v", got, want)
	}
	if len(got) != 3 {
		t.Errorf("Query(p) len = %d, want 3", len(got))
	}
}

func TestQuery_Intersection(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	db, err := New(f.bodies, f.approaches)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	p1, p2 := farther(0.1), faster(5)
	both := slices.Collect(db.Query(p1, p2))
	only1 := slices.Collect(db.Query(p1))
	only2 := slices.Collect(db.Query(p2))

	var want []*model.Approach
	for _, a := range only1 {
		if slices.Contains(only2, a) {
			want = append(want, a)
		}
	}
	if !slices.Equal(both, want) {
		t.Errorf("Query(p1, p2) = %v, want intersection %v", both, want)
	}
}

func TestQuery_ShortCircuit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	db, err := New(f.bodies, f.approaches)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	calls := 0
	never := PredicateFunc(func(*model.Approach) bool { return false })
	counting := PredicateFunc(func(*model.Approach) bool {
		calls++
		return true
	})

	if got := slices.Collect(db.Query(never, counting)); len(got) != 0 {
		t.Errorf("Query(never, ...) = %v, want empty", got)
	}
	if calls != 0 {
		t.Errorf("second predicate called %d times after first failed", calls)
	}
}

func TestQuery_RestartableAndReadOnly(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	db, err := New(f.bodies, f.approaches)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	seq := db.Query(farther(0.05))
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	third := slices.Collect(db.Query(farther(0.05)))
	if !slices.Equal(first, second) || !slices.Equal(first, third) {
		t.Errorf("repeated queries differ: %v / %v / %v", first, second, third)
	}

	if len(f.eros.Approaches()) != 2 || f.orphan.Body() != nil || f.erosA.Body() != f.eros {
		t.Error("querying mutated the linked records")
	}
}

func TestQuery_StopsWhenCallerStops(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	db, err := New(f.bodies, f.approaches)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	evaluated := 0
	counting := PredicateFunc(func(*model.Approach) bool {
		evaluated++
		return true
	})
	for range db.Query(counting) {
		break
	}
	if evaluated != 1 {
		t.Errorf("predicate evaluated %d times, want 1", evaluated)
	}
}

func TestQuery_PredicatePanicPropagates(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	db, err := New(f.bodies, f.approaches)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	boom := PredicateFunc(func(a *model.Approach) bool {
		if a.Body() == nil {
			panic("no body")
		}
		return true
	})

	defer func() {
		if r := recover(); r != "no body" {
			t.Errorf("recovered %v, want predicate panic", r)
		}
	}()
	for range db.Query(boom) {
	}
	t.Error("query should have panicked")
}

func TestQuery_HazardousSkipsUnlinked(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	db, err := New(f.bodies, f.approaches)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := slices.Collect(db.Query(hazardous))
	if len(got) != 1 || got[0] != f.ak3A {
		t.Errorf("Query(hazardous) = %v, want [ak3A]", got)
	}
}

func TestLimit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	db, err := New(f.bodies, f.approaches)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		n    int
		want int
	}{
		{0, 4},
		{-1, 4},
		{1, 1},
		{3, 3},
		{10, 4},
	}
	for _, tt := range tests {
		got := slices.Collect(Limit(db.Query(), tt.n))
		if len(got) != tt.want {
			t.Errorf("Limit(n=%d) len = %d, want %d", tt.n, len(got), tt.want)
		}
		if !slices.Equal(got, f.approaches[:len(got)]) {
			t.Errorf("Limit(n=%d) changed order: %v", tt.n, got)
		}
	}
}
