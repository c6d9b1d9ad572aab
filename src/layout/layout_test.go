package layout

import (
	"math/rand"
	"reflect"
	"testing"
)

func equalTabs(n int, minHeight int) []TabSpec {
	tabs := make([]TabSpec, n)
	for i := range tabs {
		tabs[i] = TabSpec{HeightWeight: 1, MinContentHeight: minHeight}
	}
	return tabs
}

func heights(result Result) []int {
	hs := []int{}
	for _, rect := range result.Tabs {
		hs = append(hs, rect.Height)
	}
	return hs
}

func TestWidths(t *testing.T) {
	result := Compute(80, 24, equalTabs(1, 1), 0, DefaultConfig())
	if result.TabList.Width != 32 || result.Content.Width != 48 {
		t.Errorf("Unexpected widths: %d, %d", result.TabList.Width, result.Content.Width)
	}
	if result.Content.X != 32 || result.Contents[0] != result.Content {
		t.Errorf("Unexpected content box: %v", result.Contents[0])
	}

	cfg := DefaultConfig()
	cfg.TabsWidth = 1.5
	result = Compute(80, 24, equalTabs(1, 1), 0, cfg)
	if result.TabList.Width != 80 || result.Content.Width != 0 || result.Renderable {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestEqualTabs(t *testing.T) {
	result := Compute(80, 24, equalTabs(3, 1), 0, DefaultConfig())
	if result.TabList.Height != 22 {
		t.Errorf("Unexpected usable height: %d", result.TabList.Height)
	}
	if hs := heights(result); !reflect.DeepEqual(hs, []int{7, 7, 8}) {
		t.Errorf("Unexpected heights: %v", hs)
	}
	ys := []int{}
	for _, rect := range result.Tabs {
		ys = append(ys, rect.Y)
	}
	if !reflect.DeepEqual(ys, []int{0, 7, 14}) {
		t.Errorf("Unexpected positions: %v", ys)
	}
	if result.Minimized || !result.Renderable {
		t.Errorf("Unexpected state: minimized=%v renderable=%v", result.Minimized, result.Renderable)
	}
	if result.MinHeight != 9 || result.StrictMinHeight != 5 {
		t.Errorf("Unexpected minimums: %d, %d", result.MinHeight, result.StrictMinHeight)
	}
}

func TestBumpedTabsGiveBackRows(t *testing.T) {
	tabs := []TabSpec{{10, 1}, {1, 5}, {1, 1}}
	result := Compute(80, 22, tabs, 0, DefaultConfig())
	if hs := heights(result); !reflect.DeepEqual(hs, []int{10, 7, 3}) {
		t.Errorf("Unexpected heights: %v", hs)
	}
}

func TestNormalModeProperties(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for iter := 0; iter < 1000; iter++ {
		n := 1 + random.Intn(6)
		tabs := make([]TabSpec, n)
		for i := range tabs {
			tabs[i] = TabSpec{
				HeightWeight:     0.1 + random.Float64()*5,
				MinContentHeight: 1 + random.Intn(8)}
		}
		height := FooterHeight + random.Intn(80)
		result := Compute(100, height, tabs, random.Intn(n), DefaultConfig())
		if result.Minimized {
			continue
		}
		sum := 0
		for i, rect := range result.Tabs {
			if rect.Height < tabs[i].MinContentHeight+2 {
				t.Fatalf("%v on %d rows: tab %d below its minimum: %v", tabs, height, i, heights(result))
			}
			sum += rect.Height
		}
		if sum != result.Content.Height {
			t.Fatalf("%v on %d rows: heights %v do not add up to %d", tabs, height, heights(result), result.Content.Height)
		}
	}
}

func TestMinimized(t *testing.T) {
	result := Compute(80, 12, equalTabs(3, 5), 1, DefaultConfig())
	if !result.Minimized || !result.Renderable {
		t.Fatalf("Unexpected state: minimized=%v renderable=%v", result.Minimized, result.Renderable)
	}
	if hs := heights(result); !reflect.DeepEqual(hs, []int{0, 8, 0}) {
		t.Errorf("Unexpected heights: %v", hs)
	}
	ys := []int{}
	for _, rect := range result.Tabs {
		ys = append(ys, rect.Y)
	}
	if !reflect.DeepEqual(ys, []int{0, 1, 9}) {
		t.Errorf("Unexpected positions: %v", ys)
	}

	random := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		n := 2 + random.Intn(5)
		selected := random.Intn(n)
		result := Compute(80, FooterHeight+random.Intn(20), equalTabs(n, 4), selected, DefaultConfig())
		if !result.Minimized {
			continue
		}
		for i, rect := range result.Tabs {
			if (i == selected) != (rect.Height > 0) {
				t.Fatalf("Only the selected tab should be expanded: %v", heights(result))
			}
		}
	}
}

func TestMinimizedWithoutRoom(t *testing.T) {
	for _, c := range []struct{ n, usable int }{{4, 1}, {5, 0}, {3, 3}} {
		result := Compute(80, FooterHeight+c.usable, equalTabs(c.n, 1), c.n-1, DefaultConfig())
		if !result.Minimized || result.Renderable {
			t.Errorf("%+v: minimized=%v renderable=%v", c, result.Minimized, result.Renderable)
		}
		expected := make([]int, c.n)
		expected[c.n-1] = max(1, c.usable-c.n+1)
		if hs := heights(result); !reflect.DeepEqual(hs, expected) {
			t.Errorf("%+v: unexpected heights %v", c, hs)
		}
	}
}

func TestRenderable(t *testing.T) {
	if Compute(20, 24, equalTabs(2, 1), 0, DefaultConfig()).Renderable {
		t.Error("Tab list narrower than its minimum")
	}
	if Compute(80, 6, equalTabs(2, 3), 0, DefaultConfig()).Renderable {
		t.Error("Not enough rows for the selected tab and the headers")
	}
	if !Compute(80, 8, equalTabs(2, 3), 0, DefaultConfig()).Renderable {
		t.Error("Minimized layout should fit")
	}

	result := Compute(80, 24, nil, 0, DefaultConfig())
	if len(result.Tabs) != 0 || result.Minimized || !result.Renderable {
		t.Errorf("Unexpected result without tabs: %+v", result)
	}
}
