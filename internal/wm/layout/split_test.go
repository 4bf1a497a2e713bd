package layout

import (
	"testing"

	"github.com/1broseidon/ceramic/internal/wm"
)

// scenario S1 from spec.md §8.
func TestSplitLayoutScenarioS1(t *testing.T) {
	root := NewRoot("m", NewSplitLayout(
		wm.AxisX, wm.Decreasing, 0.75, 1,
		NewLinearLayout(wm.AxisX, wm.Decreasing),
		NewLinearLayout(wm.AxisY, wm.Increasing),
	))

	w1, w2, w3 := wm.WindowID(1), wm.WindowID(2), wm.WindowID(3)
	records := []wm.Record{{Window: w1}, {Window: w2}, {Window: w3}}
	bounds := wm.Bounds{X: 0, Y: 0, Width: 1000, Height: 500}

	decisions := root.Layout(bounds, records, nil)
	byWindow := map[wm.WindowID]wm.Bounds{}
	for _, r := range decisions.Records {
		byWindow[r.Window] = r.Bounds
	}

	if got, want := byWindow[w1].X, 250; got != want {
		t.Fatalf("W1.X = %d, want %d", got, want)
	}
	if got, want := byWindow[w1].Width, 750; got != want {
		t.Fatalf("W1.Width = %d, want %d", got, want)
	}

	// W2 and W3 split the left column (R2) vertically in halves.
	if byWindow[w2].X != 0 || byWindow[w3].X != 0 {
		t.Fatalf("W2/W3 should stay in the R2 column at X=0, got %+v %+v", byWindow[w2], byWindow[w3])
	}
	if byWindow[w2].Height != 250 || byWindow[w3].Height != 250 {
		t.Fatalf("W2/W3 should split height in half, got %+v %+v", byWindow[w2], byWindow[w3])
	}
}

// scenario S2: increase_ratio takes 0.75 -> 0.80.
func TestSplitLayoutScenarioS2(t *testing.T) {
	split := NewSplitLayout(
		wm.AxisX, wm.Decreasing, 0.75, 1,
		NewLinearLayout(wm.AxisX, wm.Decreasing),
		NewLinearLayout(wm.AxisY, wm.Increasing),
	)
	root := NewRoot("m", split)

	if !root.ExecuteCommand("m/increase_ratio", nil) {
		t.Fatalf("increase_ratio should report layout changed")
	}
	if got := split.Ratio; got < 0.799 || got > 0.801 {
		t.Fatalf("ratio after increase = %v, want ~0.80", got)
	}

	w1 := wm.WindowID(1)
	records := []wm.Record{{Window: w1}}
	bounds := wm.Bounds{X: 0, Y: 0, Width: 1000, Height: 500}
	decisions := root.Layout(bounds, records, nil)
	if decisions.Records[0].Bounds.Width != 800 {
		t.Fatalf("W1 width after increase_ratio = %d, want 800", decisions.Records[0].Bounds.Width)
	}
}

func TestSplitLayoutRatioClamped(t *testing.T) {
	split := NewSplitLayout(wm.AxisX, wm.Increasing, 0.88, 1, NewLinearLayout(wm.AxisX, wm.Increasing), NewLinearLayout(wm.AxisX, wm.Increasing))
	for i := 0; i < 10; i++ {
		split.ExecuteCommand("increase_ratio", nil)
	}
	if split.Ratio > splitRatioMax {
		t.Fatalf("ratio exceeded max: %v", split.Ratio)
	}
}

func TestSplitLayoutCountFloorOne(t *testing.T) {
	split := NewSplitLayout(wm.AxisX, wm.Increasing, 0.5, 1, NewLinearLayout(wm.AxisX, wm.Increasing), NewLinearLayout(wm.AxisX, wm.Increasing))
	split.ExecuteCommand("decrease_count", nil)
	split.ExecuteCommand("decrease_count", nil)
	if split.Count != 1 {
		t.Fatalf("count floor should be 1, got %d", split.Count)
	}
}

// property 4: the left subtree receives exactly Count records when n > Count.
func TestSplitLayoutCountPartition(t *testing.T) {
	split := NewSplitLayout(wm.AxisX, wm.Increasing, 0.5, 2, NewLinearLayout(wm.AxisX, wm.Increasing), NewLinearLayout(wm.AxisX, wm.Increasing))
	records := make([]wm.Record, 5)
	for i := range records {
		records[i] = wm.Record{Window: wm.WindowID(i + 1)}
	}
	bounds := wm.Bounds{Width: 1000, Height: 500}
	decisions := split.Layout(bounds, records, nil)
	if len(decisions.Records) != 5 {
		t.Fatalf("expected all 5 records in output, got %d", len(decisions.Records))
	}
	// ratio 0.5 on width 1000, Increasing: R1 is [0,500), R2 is [500,1000).
	for i, r := range decisions.Records {
		inLeft := r.Bounds.MaxX() <= 500
		if (i < 2) != inLeft {
			t.Fatalf("record %d (window %d) landed in the wrong subtree: %+v", i, r.Window, r.Bounds)
		}
	}
}
