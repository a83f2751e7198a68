package lob

import "testing"

func TestCancelRemovesOrderAndCollapsesLevel(t *testing.T) {
	b := NewBook()

	b.ProcessOrder(limit("42", "A", Bid, "5", "1", 1))

	ok, err := b.CancelOrder(Bid, "42")
	if err != nil || !ok {
		t.Fatalf("expected cancel success, got ok=%v err=%v", ok, err)
	}

	if vol, _ := b.VolumeAtPrice(Bid, d("5")); !vol.IsZero() {
		t.Errorf("expected zero volume after cancel, got %s", vol)
	}
	if _, ok := b.BestBid(); ok {
		t.Errorf("price level should no longer exist")
	}
	if exists, _ := b.OrderExists(Bid, "42"); exists {
		t.Errorf("order id should be gone from the index")
	}
}

func TestCancelIsIdempotentMiss(t *testing.T) {
	b := NewBook()

	b.ProcessOrder(limit("1", "A", Bid, "10", "5", 1))

	if ok, _ := b.CancelOrder(Bid, "1"); !ok {
		t.Fatalf("first cancel should succeed")
	}
	if ok, _ := b.CancelOrder(Bid, "1"); ok {
		t.Fatalf("second cancel should be a benign miss")
	}
	if ok, _ := b.CancelOrder(Ask, "never-existed"); ok {
		t.Fatalf("unknown id should be a benign miss")
	}
}

func TestCancelInvalidSide(t *testing.T) {
	b := NewBook()

	if _, err := b.CancelOrder("mid", "1"); err != ErrInvalidSide {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
}

func TestCancelMiddleOfLevelKeepsFIFO(t *testing.T) {
	b := NewBook()

	b.ProcessOrder(limit("S1", "A", Ask, "100", "5", 1))
	b.ProcessOrder(limit("S2", "B", Ask, "100", "5", 2))
	b.ProcessOrder(limit("S3", "C", Ask, "100", "5", 3))

	if ok, _ := b.CancelOrder(Ask, "S2"); !ok {
		t.Fatalf("cancel S2 failed")
	}
	if vol, _ := b.VolumeAtPrice(Ask, d("100")); !vol.Equal(d("10")) {
		t.Errorf("expected volume 10 after cancel, got %s", vol)
	}

	trades, _, err := b.ProcessOrder(limit("B1", "D", Bid, "100", "10", 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 2 || trades[0].Maker.OrderID != "S1" || trades[1].Maker.OrderID != "S3" {
		t.Errorf("expected S1 then S3 after cancelling S2, got %+v", trades)
	}
}

func TestCancelledOrderNeverMatches(t *testing.T) {
	b := NewBook()

	b.ProcessOrder(limit("S1", "A", Ask, "100", "5", 1))
	b.CancelOrder(Ask, "S1")

	trades, resting, err := b.ProcessOrder(limit("B1", "B", Bid, "100", "5", 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 0 {
		t.Fatalf("cancelled order matched: %+v", trades)
	}
	if resting == nil || !resting.Quantity.Equal(d("5")) {
		t.Fatalf("bid should rest in full, got %+v", resting)
	}
}

func TestVolumeAtPriceInvalidSide(t *testing.T) {
	b := NewBook()
	if _, err := b.VolumeAtPrice("mid", d("1")); err != ErrInvalidSide {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
}

func TestDepthSnapshot(t *testing.T) {
	b := NewBook()

	b.ProcessOrder(limit("1", "A", Ask, "101", "5", 1))
	b.ProcessOrder(limit("2", "A", Ask, "103", "2", 2))
	b.ProcessOrder(limit("3", "B", Ask, "101", "1", 3))

	depth, err := b.Depth(Ask)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(depth) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(depth))
	}
	if !depth[0].Price.Equal(d("101")) || !depth[0].Volume.Equal(d("6")) || depth[0].Orders != 2 {
		t.Errorf("incorrect best level: %+v", depth[0])
	}
	if !depth[1].Price.Equal(d("103")) || depth[1].Orders != 1 {
		t.Errorf("incorrect second level: %+v", depth[1])
	}
}
