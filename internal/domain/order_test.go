package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func menuItem(category, name string, price string) MenuItem {
	p, _ := decimal.NewFromString(price)
	return MenuItem{ID: uuid.New(), Category: category, Name: name, Price: p}
}

func TestBuildOrderTotals(t *testing.T) {
	// Catalog {A: $10, B: $5}, selection {A:2, B:1}, table "T3".
	a := menuItem("mains", "A", "10.00")
	b := menuItem("sides", "B", "5.00")
	catalog := map[uuid.UUID]MenuItem{a.ID: a, b.ID: b}

	o, err := BuildOrder(Selection{a.ID: 2, b.ID: 1}, catalog, "T3", time.Now())
	if err != nil {
		t.Fatalf("BuildOrder() error = %v", err)
	}

	if o.Status != StatusPlaced {
		t.Errorf("status = %q, want placed", o.Status)
	}
	if o.TableID != "T3" {
		t.Errorf("table = %q", o.TableID)
	}
	if len(o.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(o.Lines))
	}
	if !o.Total.Equal(decimal.RequireFromString("25.00")) {
		t.Errorf("total = %s, want 25.00", o.Total)
	}

	byName := map[string]OrderLine{}
	for _, l := range o.Lines {
		byName[l.Name] = l
	}
	if got := byName["A"].Total(); !got.Equal(decimal.RequireFromString("20.00")) {
		t.Errorf("line A total = %s, want 20.00", got)
	}
	if got := byName["B"].Total(); !got.Equal(decimal.RequireFromString("5.00")) {
		t.Errorf("line B total = %s, want 5.00", got)
	}
}

func TestBuildOrderEmptySelection(t *testing.T) {
	_, err := BuildOrder(Selection{}, map[uuid.UUID]MenuItem{}, "T1", time.Now())
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("error = %v, want ErrEmptySelection", err)
	}
}

func TestBuildOrderMissingTable(t *testing.T) {
	a := menuItem("mains", "A", "10.00")
	_, err := BuildOrder(Selection{a.ID: 1}, map[uuid.UUID]MenuItem{a.ID: a}, "", time.Now())
	if !errors.Is(err, ErrMissingTable) {
		t.Fatalf("error = %v, want ErrMissingTable", err)
	}
}

func TestBuildOrderDropsUnresolvedIDs(t *testing.T) {
	a := menuItem("mains", "A", "10.00")
	stale := uuid.New()
	catalog := map[uuid.UUID]MenuItem{a.ID: a}

	o, err := BuildOrder(Selection{a.ID: 1, stale: 3}, catalog, "T1", time.Now())
	if err != nil {
		t.Fatalf("BuildOrder() error = %v", err)
	}
	if len(o.Lines) != 1 || o.Lines[0].Name != "A" {
		t.Fatalf("lines = %+v, want only A", o.Lines)
	}
	if !o.Total.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("total = %s, want 10.00", o.Total)
	}
}

func TestBuildOrderAllUnresolved(t *testing.T) {
	_, err := BuildOrder(Selection{uuid.New(): 1}, map[uuid.UUID]MenuItem{}, "T1", time.Now())
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("error = %v, want ErrEmptySelection", err)
	}
}

func TestOrderSnapshotIndependentOfCatalog(t *testing.T) {
	a := menuItem("mains", "A", "12.50")
	catalog := map[uuid.UUID]MenuItem{a.ID: a}

	o, err := BuildOrder(Selection{a.ID: 2}, catalog, "T1", time.Now())
	if err != nil {
		t.Fatalf("BuildOrder() error = %v", err)
	}

	// Delete the item and reprice the catalog; the stored snapshot must
	// keep totalling from the prices captured at order time.
	delete(catalog, a.ID)
	a.Price = decimal.RequireFromString("99.99")

	if !o.RecomputedTotal().Equal(decimal.RequireFromString("25.00")) {
		t.Errorf("recomputed total = %s, want 25.00", o.RecomputedTotal())
	}
}

func TestCategories(t *testing.T) {
	items := []MenuItem{
		menuItem("drinks", "Cola", "2.00"),
		menuItem("mains", "Steak", "20.00"),
		menuItem("drinks", "Water", "1.00"),
	}
	got := Categories(items)
	want := []string{"drinks", "mains"}
	if len(got) != len(want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("categories[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
