package lazydash

import (
	"io"
	"os"
	"time"

	"github.com/gdamms/lazydash/src/tui"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is the YAML description of a dashboard
//
//	refresh: 5s
//	theme:
//	  tab-selected: fg:cyan,bold
//	tabs:
//	  - name: System
//	    subtabs: [Uptime, Disk]
//	    weight: 2
//	    min_height: 3
//	    lines:
//	      - text: localhost
//	        commands: [uptime, df -h]
type File struct {
	Refresh string            `yaml:"refresh"`
	Theme   map[string]string `yaml:"theme"`
	Tabs    []TabConfig       `yaml:"tabs"`
}

// TabConfig describes a tab. Zero weight and height use the defaults.
type TabConfig struct {
	Name      string       `yaml:"name"`
	Subtabs   []string     `yaml:"subtabs"`
	Weight    float64      `yaml:"weight"`
	MinHeight int          `yaml:"min_height"`
	Lines     []LineConfig `yaml:"lines"`
}

// LineConfig describes a line. The output of the i-th command replaces the
// i-th subtext on every refresh; empty commands keep the static subtext.
type LineConfig struct {
	Text     string   `yaml:"text"`
	Subtexts []string `yaml:"subtexts"`
	Commands []string `yaml:"commands"`
}

// LoadFile reads and validates a dashboard file
func LoadFile(path string) (*File, error) {
	reader, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open dashboard file")
	}
	defer reader.Close()
	return ReadFile(reader, path)
}

// ReadFile decodes a dashboard file. Unknown keys are errors.
func ReadFile(reader io.Reader, name string) (*File, error) {
	file := &File{}
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(file); err != nil && err != io.EOF {
		return nil, usageError("%s: %s", name, err.Error())
	}
	if err := file.validate(); err != nil {
		return nil, errors.Wrap(err, name)
	}
	return file, nil
}

func (f *File) validate() error {
	if len(f.Refresh) > 0 {
		refresh, err := time.ParseDuration(f.Refresh)
		if err != nil || refresh <= 0 {
			return usageError("invalid refresh interval: %s", f.Refresh)
		}
	}
	if _, err := f.BuildTheme(); err != nil {
		return err
	}
	for i, tab := range f.Tabs {
		if len(tab.Name) == 0 {
			return usageError("tab #%d has no name", i+1)
		}
		if err := validateTab(tab.Name, tab.weight(), tab.minHeight()); err != nil {
			return err
		}
	}
	return nil
}

// RefreshInterval returns the delay between two runs of the commands
func (f *File) RefreshInterval() time.Duration {
	if refresh, err := time.ParseDuration(f.Refresh); err == nil && refresh > 0 {
		return refresh
	}
	return defaultRefresh
}

// BuildTheme applies the theme section on top of the default theme
func (f *File) BuildTheme() (tui.Theme, error) {
	theme := tui.DefaultTheme
	for name, spec := range f.Theme {
		if err := theme.Set(name, spec); err != nil {
			return theme, err
		}
	}
	return theme, nil
}

func (c TabConfig) weight() float64 {
	if c.Weight == 0 {
		return defaultHeightWeight
	}
	return c.Weight
}

func (c TabConfig) minHeight() int {
	if c.MinHeight == 0 {
		return defaultMinHeight
	}
	return c.MinHeight
}

// job runs a shell command and puts its output into a subtext
type job struct {
	line    *Line
	subtab  int
	command string
}

// Load replaces the tabs and the theme of the dashboard with the content of
// the file. It returns the commands feeding the new lines.
func (d *Dashboard) Load(file *File) ([]job, error) {
	theme, err := file.BuildTheme()
	if err != nil {
		return nil, err
	}

	tabs := make([]*Tab, 0, len(file.Tabs))
	jobs := []job{}
	for _, config := range file.Tabs {
		if err := validateTab(config.Name, config.weight(), config.minHeight()); err != nil {
			return nil, err
		}
		tab := newTab(config.Name, config.Subtabs, config.weight(), config.minHeight(), d.screen, d.theme)
		for _, lineConfig := range config.Lines {
			line := tab.AddLine(lineConfig.Text, lineConfig.Subtexts...)
			for subtab, command := range lineConfig.Commands {
				if len(command) > 0 {
					jobs = append(jobs, job{line: line, subtab: subtab, command: command})
				}
			}
		}
		tabs = append(tabs, tab)
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()
	*d.theme = theme
	d.tabs = tabs
	if d.selectedTab >= len(tabs) {
		d.selectedTab = 0
	}
	d.logger.Info("dashboard loaded", "tabs", len(tabs), "commands", len(jobs))
	return jobs, nil
}
