package lazydash

import (
	"fmt"
	"strings"

	"github.com/gdamms/lazydash/src/tui"
)

// buildDemo fills the dashboard shown when no file is given
func buildDemo(d *Dashboard) error {
	tab1, err := d.NewTab("Tab 1", []string{"Subtab 1", "Subtab 2", "Subtab 3"}, defaultHeightWeight, defaultMinHeight)
	if err != nil {
		return err
	}
	for i := 1; i <= 3; i++ {
		tab1.AddLine(fmt.Sprintf("Line %d", i), "Subtext 1", "Subtext 2", "Subtext 3")
	}
	var long strings.Builder
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&long, "Subtext 1.%d\n", i)
	}
	tab1.AddLine("Line 4", long.String())
	tab1.AddLine("Line 5")
	tab1.AddLine("Line 6")
	tab1.AddKey(tui.Key('r'), func() { tab1.SelectLine(3) }, "r", "Jump to the long line")

	tab2, err := d.NewTab("Tab 2", nil, 0.4, defaultMinHeight)
	if err != nil {
		return err
	}
	for i := 1; i <= 9; i++ {
		tab2.AddLine(fmt.Sprintf("Line %d", i))
	}
	tab2.AddKey(tui.Key('d'), func() {
		if line := tab2.SelectedLine(); line != nil {
			tab2.DeleteLine(line)
		}
	}, "d", "Delete line")

	tab3, err := d.NewTab("Tab 3", nil, defaultHeightWeight, defaultMinHeight)
	if err != nil {
		return err
	}
	for i := 1; i <= 5; i++ {
		tab3.AddLine(fmt.Sprintf("Line %d", i))
	}
	tab3.AddKey(tui.Key('a'), func() {
		tab3.AddLine(fmt.Sprintf("Line %d", tab3.NumLines()+1))
	}, "a", "Add line")
	return nil
}
