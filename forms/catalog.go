package forms

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	levenshtein "github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

// WireFormat selects how a submitted date is rendered for the backend.
type WireFormat string

const (
	WireISO        WireFormat = "iso"         // YYYY-MM-DD
	WireUnixMillis WireFormat = "unix_millis" // midnight, local zone, in ms
)

// FormSpec describes one form screen that carries a date field.
type FormSpec struct {
	Name           string     `yaml:"-" json:"name"`
	Label          string     `yaml:"label" json:"label"`
	DateField      string     `yaml:"dateField" json:"dateField"`
	DateLabel      string     `yaml:"dateLabel" json:"dateLabel"`
	PickerTitle    string     `yaml:"pickerTitle" json:"pickerTitle"`
	NotBeforeToday bool       `yaml:"notBeforeToday" json:"notBeforeToday"`
	WireFormat     WireFormat `yaml:"wireFormat" json:"wireFormat"`
}

func (f *FormSpec) validate() error {
	if f.DateField == "" {
		return fmt.Errorf("form %s: dateField is required", f.Name)
	}
	if f.DateLabel == "" {
		f.DateLabel = "date"
	}
	if f.PickerTitle == "" {
		f.PickerTitle = "Select Date"
	}
	switch f.WireFormat {
	case "":
		f.WireFormat = WireISO
	case WireISO, WireUnixMillis:
	default:
		return fmt.Errorf("form %s: unknown wireFormat %q", f.Name, f.WireFormat)
	}
	return nil
}

// Catalog holds the form definitions, keyed by name.
type Catalog struct {
	Path  string
	Forms map[string]*FormSpec
}

//go:embed catalog/*.yml
var builtin embed.FS

// NewCatalog loads every *.yml / *.yaml file below path.
func NewCatalog(path string) (*Catalog, error) {
	c, err := LoadCatalog(os.DirFS(path))
	if err != nil {
		return nil, err
	}
	c.Path = path
	return c, nil
}

// Builtin returns the catalog compiled into the binary.
func Builtin() (*Catalog, error) {
	sub, err := fs.Sub(builtin, "catalog")
	if err != nil {
		return nil, err
	}
	return LoadCatalog(sub)
}

// LoadCatalog walks fsys for YAML files, each a map of form name to spec.
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{Forms: map[string]*FormSpec{}}
	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".yml") && !strings.HasSuffix(d.Name(), ".yaml") {
			return nil
		}
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		fileDefs := map[string]*FormSpec{}
		if err := yaml.Unmarshal(raw, &fileDefs); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for name, spec := range fileDefs {
			if spec == nil {
				return fmt.Errorf("%s: empty form %s", path, name)
			}
			if _, ok := c.Forms[name]; ok {
				return fmt.Errorf("duplicate form name: %s", name)
			}
			spec.Name = name
			if err := spec.validate(); err != nil {
				return err
			}
			c.Forms[name] = spec
		}
		return nil
	}
	if err := fs.WalkDir(fsys, ".", walk); err != nil {
		return nil, err
	}
	if len(c.Forms) == 0 {
		return nil, fmt.Errorf("no form definitions found")
	}
	return c, nil
}

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
)

// Default returns the shared builtin catalog. A directory override goes
// through config.Load and NewCatalog. A broken embedded catalog panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		var err error
		if defaultCatalog, err = Builtin(); err != nil {
			panic(fmt.Errorf("failed to load form catalog: %w", err))
		}
	})
	return defaultCatalog
}

func (c *Catalog) Get(name string) *FormSpec { return c.Forms[name] }

// Names lists the form names in order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.Forms))
	for name := range c.Forms {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Suggest returns the closest form name to a mistyped one.
func (c *Catalog) Suggest(name string) (string, bool) {
	return Closest(name, c.Names(), 3)
}

// Closest picks the candidate with the smallest edit distance to name,
// if it is within maxDist.
func Closest(name string, candidates []string, maxDist int) (string, bool) {
	name = strings.ToLower(name)
	best, bestDist := "", maxDist+1
	for _, cand := range candidates {
		if dist := levenshtein.ComputeDistance(name, strings.ToLower(cand)); dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best, best != ""
}
