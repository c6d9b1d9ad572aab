package lazydash

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamms/lazydash/src/tui"
)

func TestBuildDemo(t *testing.T) {
	d := newTestDashboard(&bytes.Buffer{}, 80, 24)
	if err := buildDemo(d); err != nil {
		t.Fatal(err)
	}
	tabs := d.Tabs()
	if len(tabs) != 3 || tabs[0].NumLines() != 6 || tabs[1].NumLines() != 9 || tabs[2].NumLines() != 5 {
		t.Fatalf("Unexpected demo: %v", tabs)
	}
	if tabs[1].HeightWeight() != 0.4 {
		t.Errorf("Unexpected weight: %v", tabs[1].HeightWeight())
	}
	long := tabs[0].Lines()[3].Subtext(0)
	if strings.Count(long, "\n") != 100 || !strings.HasPrefix(long, "Subtext 1.0\n") {
		t.Errorf("Unexpected subtext: %q", long[:20])
	}

	// Shortcuts of the selected tab
	d.HandleKey(tui.Key('r'))
	if tabs[0].SelectedLineIndex() != 3 {
		t.Error("r should jump to the long line")
	}
	d.HandleKey(tui.KeyTab)
	d.HandleKey(tui.Key('d'))
	if tabs[1].NumLines() != 8 {
		t.Error("d should delete the selected line")
	}
	d.HandleKey(tui.KeyTab)
	d.HandleKey(tui.Key('a'))
	if tabs[2].NumLines() != 6 || tabs[2].Lines()[5].Text() != "Line 6" {
		t.Error("a should add a line")
	}

	if err := d.Render(); err != nil {
		t.Fatal(err)
	}
}

func TestSessionLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dash.yml")
	content := "refresh: 1h\ntabs:\n  - name: Echo\n    lines:\n      - text: hello\n        commands: [echo world]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	d := newTestDashboard(&bytes.Buffer{}, 80, 24)
	s := &session{opts: &Options{ConfigFile: path}, dash: d, logger: d.logger}
	if err := s.load(context.Background()); err != nil {
		t.Fatal(err)
	}
	line := d.Tabs()[0].Lines()[0]
	deadline := time.Now().Add(5 * time.Second)
	for {
		var subtext string
		d.Update(func() { subtext = line.Subtext(0) })
		if subtext == "world" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Unexpected subtext: %q", subtext)
		}
		time.Sleep(5 * time.Millisecond)
	}
	s.stop()

	if err := os.WriteFile(path, []byte("tabs: [{name: ''}]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.load(context.Background()); !tui.IsUsageError(err) {
		t.Errorf("Expected usage error, got %v", err)
	}
	if d.Tabs()[0].Name() != "Echo" {
		t.Error("Tabs should be kept on error")
	}
}

func TestSessionStartFromStdin(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	go func() {
		w.WriteString("tabs:\n  - name: Piped\n    lines:\n      - text: one\n")
		w.Close()
	}()

	d := newTestDashboard(&bytes.Buffer{}, 80, 24)
	s := &session{opts: &Options{}, dash: d, logger: d.logger}
	if err := s.start(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	defer s.stop()
	tabs := d.Tabs()
	if len(tabs) != 1 || tabs[0].Name() != "Piped" || tabs[0].NumLines() != 1 {
		t.Errorf("Unexpected tabs: %v", tabs)
	}
}

func TestSessionStartDemo(t *testing.T) {
	tty, err := os.Open("/dev/tty")
	if err != nil {
		t.Skip("no terminal")
	}
	defer tty.Close()

	d := newTestDashboard(&bytes.Buffer{}, 80, 24)
	s := &session{opts: &Options{}, dash: d, logger: d.logger}
	if err := s.start(context.Background(), tty); err != nil {
		t.Fatal(err)
	}
	if len(d.Tabs()) != 3 {
		t.Errorf("Expected the demo, got %v", d.Tabs())
	}
}
