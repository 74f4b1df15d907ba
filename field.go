// ABOUTME: Tagged-variant field model for flyout forms.
// ABOUTME: One concrete type per field kind, validated at registration time.

package flyout

import "fmt"

// FieldType tags a field variant. Derivative types (post, taxonomy, user)
// only exist before registration; resolution rewrites them to ajax_select.
type FieldType string

const (
	TypeText       FieldType = "text"
	TypeEmail      FieldType = "email"
	TypeURL        FieldType = "url"
	TypeTel        FieldType = "tel"
	TypePassword   FieldType = "password"
	TypeNumber     FieldType = "number"
	TypeTextarea   FieldType = "textarea"
	TypeSelect     FieldType = "select"
	TypeToggle     FieldType = "toggle"
	TypeRadio      FieldType = "radio"
	TypeDate       FieldType = "date"
	TypeColor      FieldType = "color"
	TypeAjaxSelect FieldType = "ajax_select"
	TypePost       FieldType = "post"
	TypeTaxonomy   FieldType = "taxonomy"
	TypeUser       FieldType = "user"
)

// Field is one entry in a flyout's field table. The variant set is closed:
// the manager validates each variant at registration and rewrites derivative
// variants to their canonical form. Embedding Base satisfies everything but
// Type.
type Field interface {
	Key() string
	Type() FieldType
	base() Base
	validate() error
}

// BaseOf returns the shared attributes of any field variant.
func BaseOf(f Field) Base { return f.base() }

// Base carries the attributes shared by every field variant. Name is the key
// the field's value travels under in the form payload.
type Base struct {
	Name        string
	Label       string
	Value       string
	Description string
	Placeholder string
	Required    bool
	Disabled    bool
	ReadOnly    bool
	DependsOn   string
	Sanitize    func(string) string
}

// Key returns the field's payload key.
func (b Base) Key() string { return b.Name }

func (b Base) base() Base { return b }

func (b Base) validate() error {
	if b.Name == "" {
		return fmt.Errorf("field has no name")
	}
	return nil
}

// TextField renders a single-line input. Kind narrows the input to one of
// text, email, url, tel, or password; the zero value means plain text.
type TextField struct {
	Base
	Kind FieldType
}

func (f TextField) Type() FieldType {
	if f.Kind == "" {
		return TypeText
	}
	return f.Kind
}

func (f TextField) validate() error {
	if err := f.Base.validate(); err != nil {
		return err
	}
	switch f.Kind {
	case "", TypeText, TypeEmail, TypeURL, TypeTel, TypePassword:
		return nil
	}
	return fmt.Errorf("field %q: %q is not a text input kind", f.Name, f.Kind)
}

// NumberField renders a numeric input. Zero Min/Max/Step leave the bound
// unset in the markup.
type NumberField struct {
	Base
	Min  float64
	Max  float64
	Step float64
}

func (f NumberField) Type() FieldType { return TypeNumber }

// TextareaField renders a multi-line input.
type TextareaField struct {
	Base
	Rows int
}

func (f TextareaField) Type() FieldType { return TypeTextarea }

// SelectField renders a static dropdown over a fixed option list.
type SelectField struct {
	Base
	Options  []Option
	Multiple bool
}

func (f SelectField) Type() FieldType { return TypeSelect }

func (f SelectField) validate() error {
	if err := f.Base.validate(); err != nil {
		return err
	}
	if len(f.Options) == 0 {
		return fmt.Errorf("select field %q has no options", f.Name)
	}
	return nil
}

// ToggleField renders an on/off switch. On and Off optionally label the two
// states.
type ToggleField struct {
	Base
	On  string
	Off string
}

func (f ToggleField) Type() FieldType { return TypeToggle }

// RadioField renders a radio group over a fixed option list.
type RadioField struct {
	Base
	Options []Option
}

func (f RadioField) Type() FieldType { return TypeRadio }

func (f RadioField) validate() error {
	if err := f.Base.validate(); err != nil {
		return err
	}
	if len(f.Options) == 0 {
		return fmt.Errorf("radio field %q has no options", f.Name)
	}
	return nil
}

// DateField renders a date picker. Min and Max are ISO dates or empty.
type DateField struct {
	Base
	Min string
	Max string
}

func (f DateField) Type() FieldType { return TypeDate }

// ColorField renders a color picker.
type ColorField struct {
	Base
}

func (f ColorField) Type() FieldType { return TypeColor }

// AjaxSelectField renders a search-as-you-type dropdown backed by a unified
// search callback. Tags allows free-text values that don't match any stored
// entity. A zero PageSize falls back to DefaultPageSize.
type AjaxSelectField struct {
	Base
	Search   SearchCallback
	Multiple bool
	Tags     bool
	PageSize int
}

func (f AjaxSelectField) Type() FieldType { return TypeAjaxSelect }

func (f AjaxSelectField) validate() error {
	if err := f.Base.validate(); err != nil {
		return err
	}
	if f.Search == nil {
		return fmt.Errorf("ajax select field %q has no search callback", f.Name)
	}
	return nil
}

// PostField is a derivative variant: an ajax select over the host's posts,
// optionally narrowed to one post type.
type PostField struct {
	Base
	PostType string
	Multiple bool
}

func (f PostField) Type() FieldType { return TypePost }

// TaxonomyField is a derivative variant: an ajax select over taxonomy terms.
// Tags are enabled so free-text terms survive the round trip.
type TaxonomyField struct {
	Base
	Taxonomy string
	Multiple bool
}

func (f TaxonomyField) Type() FieldType { return TypeTaxonomy }

// UserField is a derivative variant: an ajax select over the host's users,
// optionally narrowed to one role.
type UserField struct {
	Base
	Role     string
	Multiple bool
}

func (f UserField) Type() FieldType { return TypeUser }

// resolveField rewrites derivative variants to ajax_select with a built-in
// callback bound to the given sources. All other variants pass through
// untouched. The transform is pure: a missing source only surfaces when the
// callback is invoked.
func resolveField(f Field, src Sources) (Field, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	switch v := f.(type) {
	case PostField:
		return AjaxSelectField{Base: v.Base, Search: EntitySearch(src.Posts, v.PostType), Multiple: v.Multiple}, nil
	case TaxonomyField:
		return AjaxSelectField{Base: v.Base, Search: EntitySearch(src.Terms, v.Taxonomy), Multiple: v.Multiple, Tags: true}, nil
	case UserField:
		return AjaxSelectField{Base: v.Base, Search: EntitySearch(src.Users, v.Role), Multiple: v.Multiple}, nil
	}
	return f, nil
}
