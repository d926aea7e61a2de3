package pages

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// OverridesFile is the file name LoadOverrides looks for in the config dir.
const OverridesFile = "pages.yaml"

// Overrides is the content of pages.yaml.
type Overrides struct {
	Pages map[string]PageOverride `yaml:"pages"`
}

// PageOverride adjusts one page. Zero values leave the page as it is.
type PageOverride struct {
	Title        string          `yaml:"title,omitempty"`
	SearchFields []string        `yaml:"search_fields,omitempty"`
	FilterField  string          `yaml:"filter_field,omitempty"`
	Fields       []FieldOverride `yaml:"fields,omitempty"`
}

// FieldOverride changes a form field, or adds one when Key is not a field
// of the page yet. Validate is a boolean expression over `value` that must
// hold for the value to be accepted; Message is shown when it does not.
type FieldOverride struct {
	Key      string          `yaml:"key"`
	Label    string          `yaml:"label,omitempty"`
	Kind     types.FieldKind `yaml:"kind,omitempty"`
	Required *bool           `yaml:"required,omitempty"`
	Options  []types.Option  `yaml:"options,omitempty"`
	Default  any             `yaml:"default,omitempty"`
	Validate string          `yaml:"validate,omitempty"`
	Message  string          `yaml:"message,omitempty"`
}

// LoadOverrides reads pages.yaml. A missing file yields empty overrides.
// Unknown keys are rejected so typos do not go unnoticed.
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Overrides{}, nil
	}
	if err != nil {
		return Overrides{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var o Overrides
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return Overrides{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return o, nil
}

// Apply returns a registry with the overrides applied. Every validate rule
// is compiled here; the receiver is not modified.
func (r *Registry) Apply(o Overrides) (*Registry, error) {
	pages := r.Pages()
	for name, po := range o.Pages {
		i := slices.IndexFunc(pages, func(p Page) bool { return p.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("%w: %q in overrides", types.ErrUnknownPage, name)
		}
		p, err := applyPage(pages[i], po)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", name, err)
		}
		pages[i] = p
	}
	return NewRegistry(pages...)
}

func applyPage(p Page, po PageOverride) (Page, error) {
	if po.Title != "" {
		p.Title = po.Title
	}
	if len(po.SearchFields) > 0 {
		p.SearchFields = slices.Clone(po.SearchFields)
	}
	if po.FilterField != "" {
		p.FilterField = po.FilterField
	}
	for _, fo := range po.Fields {
		if fo.Key == "" {
			return p, fmt.Errorf("%w: field override without key", types.ErrInvalidFieldConfig)
		}
		i := slices.IndexFunc(p.Fields, func(f types.FieldConfig) bool { return f.Key == fo.Key })
		var f types.FieldConfig
		if i >= 0 {
			f = p.Fields[i]
		} else {
			f = types.FieldConfig{Key: fo.Key, Kind: types.FieldText}
		}
		if err := applyField(&f, fo); err != nil {
			return p, err
		}
		if i >= 0 {
			p.Fields[i] = f
		} else {
			p.Fields = append(p.Fields, f)
		}
	}
	return p, nil
}

func applyField(f *types.FieldConfig, fo FieldOverride) error {
	if fo.Label != "" {
		f.Label = fo.Label
	}
	if fo.Kind != "" {
		f.Kind = fo.Kind
	}
	if fo.Required != nil {
		f.Required = *fo.Required
	}
	if len(fo.Options) > 0 {
		f.Options = slices.Clone(fo.Options)
	}
	if fo.Default != nil {
		f.Default = fo.Default
	}
	if fo.Validate != "" {
		v, err := CompileRule(fo.Validate, fo.Message)
		if err != nil {
			return fmt.Errorf("field %s: %w", fo.Key, err)
		}
		f.Validate = v
	}
	return nil
}
