package cart

import "testing"

func TestAddSameProductMergesQuantity(t *testing.T) {
	c := Cart{}
	c.Add(Line{ProductID: "p1", Name: "Honey", Price: 500, Quantity: 1})
	c.Add(Line{ProductID: "p1", Name: "Honey", Price: 500, Quantity: 2})

	if len(c.Lines) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", c.Lines[0].Quantity)
	}
}

func TestAddIgnoresNonPositiveQuantity(t *testing.T) {
	c := Cart{}
	c.Add(Line{ProductID: "p1", Quantity: 0})
	c.Add(Line{ProductID: "p2", Quantity: -2})

	if !c.IsEmpty() {
		t.Fatalf("expected empty cart, got %d lines", len(c.Lines))
	}
}

func TestUpdateToZeroRemovesLine(t *testing.T) {
	c := Cart{}
	c.Add(Line{ProductID: "p1", Price: 100, Quantity: 2})
	c.Add(Line{ProductID: "p2", Price: 50, Quantity: 1})

	if ok := c.Update("p1", 0); !ok {
		t.Fatal("expected update to find line p1")
	}
	if len(c.Lines) != 1 || c.Lines[0].ProductID != "p2" {
		t.Fatalf("expected only p2 to remain, got %+v", c.Lines)
	}
}

func TestUpdateUnknownProductReturnsFalse(t *testing.T) {
	c := Cart{}
	if ok := c.Update("missing", 3); ok {
		t.Fatal("expected update of unknown product to return false")
	}
}

func TestTotalOverOperationSequence(t *testing.T) {
	c := Cart{}
	c.Add(Line{ProductID: "p1", Price: 120, Quantity: 2})  // 240
	c.Add(Line{ProductID: "p2", Price: 75.5, Quantity: 1}) // 75.5
	c.Add(Line{ProductID: "p1", Price: 120, Quantity: 1})  // p1 -> 3
	c.Update("p2", 4)                                      // 302
	c.Add(Line{ProductID: "p3", Price: 30, Quantity: 2})   // 60
	c.Remove("p1")

	if got, want := c.Total(), 75.5*4+60; got != want {
		t.Fatalf("expected total %v, got %v", want, got)
	}
	if got := c.Count(); got != 6 {
		t.Fatalf("expected count 6, got %d", got)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	c := Cart{}
	c.Add(Line{ProductID: "p1", Price: 10, Quantity: 5})
	c.Clear()

	if !c.IsEmpty() || c.Total() != 0 || c.Count() != 0 {
		t.Fatalf("expected cleared cart, got %+v", c)
	}
}
