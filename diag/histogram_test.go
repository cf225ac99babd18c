package diag

import "testing"

func TestHistogramAddBinsAndCounts(t *testing.T) {
	h := NewHistogram(0, 10, 4) // bins: [0,9] [10,19] [20,29] [30,39]

	h.Add(5)  // bin 1
	h.Add(15) // bin 2
	h.Add(15) // bin 2
	h.Add(99) // over

	if got := h.BinCount(1); got != 1 {
		t.Fatalf("bin 1 count = %d, want 1", got)
	}
	if got := h.BinCount(2); got != 2 {
		t.Fatalf("bin 2 count = %d, want 2", got)
	}
	if got := h.BinCount(h.NBins() + 1); got != 1 {
		t.Fatalf("over-range count = %d, want 1", got)
	}
	if got := h.NValues(); got != 4 {
		t.Fatalf("NValues = %d, want 4", got)
	}
}

func TestHistogramUnderRange(t *testing.T) {
	h := NewHistogram(10, 10, 4)
	h.Add(3)
	if got := h.BinCount(0); got != 1 {
		t.Fatalf("under-range count = %d, want 1", got)
	}
}

func TestHistogramMeanValue(t *testing.T) {
	h := NewHistogram(0, 10, 4)
	if got := h.MeanValue(); got != 0 {
		t.Fatalf("empty MeanValue = %v, want 0", got)
	}

	h.Add(10)
	h.Add(20)
	if got := h.MeanValue(); got != 15 {
		t.Fatalf("MeanValue = %v, want 15", got)
	}
}

func TestHistogramMaxBinCountAndReset(t *testing.T) {
	h := NewHistogram(0, 10, 4)
	h.Add(1)
	h.Add(1)
	h.Add(11)

	if got := h.MaxBinCount(); got != 2 {
		t.Fatalf("MaxBinCount = %d, want 2", got)
	}

	h.Reset()
	if got := h.NValues(); got != 0 {
		t.Fatalf("NValues after Reset = %d, want 0", got)
	}
	if got := h.MaxBinCount(); got != 0 {
		t.Fatalf("MaxBinCount after Reset = %d, want 0", got)
	}
	if got := h.BinCount(1); got != 0 {
		t.Fatalf("BinCount after Reset = %d, want 0", got)
	}
}

func TestHistogramMinMaxValue(t *testing.T) {
	h := NewHistogram(0, 10, 4)
	h.Add(25)
	h.Add(5)
	h.Add(15)

	if got := h.MinValue(); got != 5 {
		t.Fatalf("MinValue = %d, want 5", got)
	}
	if got := h.MaxValue(); got != 25 {
		t.Fatalf("MaxValue = %d, want 25", got)
	}
}

func TestHistogramBinCountOutOfRange(t *testing.T) {
	h := NewHistogram(0, 10, 4)
	if got := h.BinCount(-1); got != 0 {
		t.Fatalf("BinCount(-1) = %d, want 0", got)
	}
	if got := h.BinCount(99); got != 0 {
		t.Fatalf("BinCount(99) = %d, want 0", got)
	}
}

func TestHistogramOverflowTraceCapped(t *testing.T) {
	h := NewHistogram(0, 10, 1)
	for i := 0; i < overTraceCount+5; i++ {
		h.Add(1000 + uint64(i))
	}
	if got := h.BinCount(h.NBins() + 1); got != overTraceCount+5 {
		t.Fatalf("over-range count = %d, want %d", got, overTraceCount+5)
	}
	if h.overIdx != overTraceCount {
		t.Fatalf("overIdx = %d, want capped at %d", h.overIdx, overTraceCount)
	}
}
