package layout

import (
	"strings"
	"sync"

	"github.com/1broseidon/ceramic/internal/wm"
)

const (
	splitRatioMin  = 0.10
	splitRatioMax  = 0.90
	splitRatioStep = 0.05
)

// Split divides bounds into R1/R2 per Bounds.Split and routes the first
// Count records to Left with R1, the rest to Right with R2; when there
// are Count or fewer records, everything goes to Left with R1 and Right
// sees nothing. Mutated at runtime by increase_count/decrease_count and
// increase_ratio/decrease_ratio; child commands are exposed with "0/" and
// "1/" prefixes for Left and Right respectively.
type Split struct {
	mu        sync.Mutex
	Axis      wm.Axis
	Direction wm.Direction
	Ratio     float64
	Count     int
	Left      wm.LayoutNode
	Right     wm.LayoutNode
}

func NewSplitLayout(axis wm.Axis, direction wm.Direction, ratio float64, count int, left, right wm.LayoutNode) *Split {
	return &Split{Axis: axis, Direction: direction, Ratio: ratio, Count: count, Left: left, Right: right}
}

func (s *Split) Layout(bounds wm.Bounds, records []wm.Record, focus *wm.WindowID) wm.Decisions {
	s.mu.Lock()
	ratio, count, axis, direction := s.Ratio, s.Count, s.Axis, s.Direction
	s.mu.Unlock()

	r1, r2 := bounds.Split(axis, direction, ratio)

	if len(records) > count {
		leftRecords := records[:count]
		rightRecords := records[count:]
		leftOut := s.Left.Layout(r1, leftRecords, focus)
		rightOut := s.Right.Layout(r2, rightRecords, focus)
		return wm.Decisions{
			Records: append(append([]wm.Record{}, leftOut.Records...), rightOut.Records...),
			Artists: append(append([]wm.Artist{}, leftOut.Artists...), rightOut.Artists...),
		}
	}

	return s.Left.Layout(r1, records, focus)
}

func (s *Split) GetCommands() []string {
	commands := []string{"increase_count", "decrease_count", "increase_ratio", "decrease_ratio"}
	for _, c := range s.Left.GetCommands() {
		commands = append(commands, "0/"+c)
	}
	for _, c := range s.Right.GetCommands() {
		commands = append(commands, "1/"+c)
	}
	return commands
}

func (s *Split) ExecuteCommand(name string, args []string) bool {
	switch name {
	case "increase_count":
		s.mu.Lock()
		s.Count++
		s.mu.Unlock()
		return true
	case "decrease_count":
		s.mu.Lock()
		if s.Count > 1 {
			s.Count--
		}
		s.mu.Unlock()
		return true
	case "increase_ratio":
		return s.adjustRatio(splitRatioStep)
	case "decrease_ratio":
		return s.adjustRatio(-splitRatioStep)
	}

	if rest, ok := strings.CutPrefix(name, "0/"); ok {
		return s.Left.ExecuteCommand(rest, args)
	}
	if rest, ok := strings.CutPrefix(name, "1/"); ok {
		return s.Right.ExecuteCommand(rest, args)
	}
	return false
}

func (s *Split) adjustRatio(delta float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.Ratio + delta
	if next < splitRatioMin {
		next = splitRatioMin
	}
	if next > splitRatioMax {
		next = splitRatioMax
	}
	// Round to avoid float accumulation drift across repeated presses.
	next = float64(int(next*100+0.5)) / 100
	changed := next != s.Ratio
	s.Ratio = next
	return changed
}
