// Package listing annotates the markdown fields of listing documents:
// the JSON trees of posts, comments and community descriptions returned
// by the content service.
//
// Every "thing" in a listing is an object {"kind": ..., "data": {...}}.
// Listings nest things under data.children and comments nest their
// replies as another listing. For each known field found in a data
// object, Annotate writes the result next to it as "<field>_annotated".
package listing

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/alnah/go-mdspan"
	"github.com/alnah/go-mdspan/internal/entity"
)

// Sentinel errors.
var (
	ErrInvalidJSON  = errors.New("invalid listing JSON")
	ErrUnknownField = errors.New("unknown listing field")
)

// AnnotatedSuffix is appended to a field name for its annotated copy.
const AnnotatedSuffix = "_annotated"

// handler turns one field value into a result.
type handler func(f *mdspan.Formatter, raw string) (*mdspan.Result, error)

// handlers maps field names to the processing each one gets. Titles are
// plain text on the service side, so they are only entity-decoded.
var handlers = map[string]handler{
	"body":               formatMarkdown,
	"selftext":           formatMarkdown,
	"description":        formatMarkdown,
	"public_description": formatMarkdown,
	"title":              decodeOnly,
}

func formatMarkdown(f *mdspan.Formatter, raw string) (*mdspan.Result, error) {
	return f.Format(raw)
}

func decodeOnly(_ *mdspan.Formatter, raw string) (*mdspan.Result, error) {
	text, err := entity.Decode(raw)
	if err != nil {
		return nil, err
	}
	return &mdspan.Result{Text: text}, nil
}

// Fields returns the supported field names, sorted.
func Fields() []string {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Annotator writes annotated copies of listing fields.
type Annotator struct {
	formatter *mdspan.Formatter
	fields    []string
}

// NewAnnotator creates an Annotator for the given fields, or for every
// supported field when fields is empty.
func NewAnnotator(f *mdspan.Formatter, fields []string) (*Annotator, error) {
	if len(fields) == 0 {
		fields = Fields()
	}
	for _, name := range fields {
		if _, ok := handlers[name]; !ok {
			return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownField, name, Fields())
		}
	}
	return &Annotator{formatter: f, fields: fields}, nil
}

// Thing is one data object visited by Walk. Path is its sjson/gjson path
// in the document.
type Thing struct {
	Path string
	Kind string
	Data gjson.Result
}

// Walk calls fn for every data object in doc, depth first, following
// listing children and comment replies. The root may be a listing, a
// single thing, or an array of either.
func Walk(doc []byte, fn func(Thing) error) error {
	if !gjson.ValidBytes(doc) {
		return ErrInvalidJSON
	}
	return walk(gjson.ParseBytes(doc), "", fn)
}

func walk(v gjson.Result, path string, fn func(Thing) error) error {
	if v.IsArray() {
		for i, item := range v.Array() {
			if err := walk(item, join(path, strconv.Itoa(i)), fn); err != nil {
				return err
			}
		}
		return nil
	}
	if !v.IsObject() {
		return nil
	}

	children := v.Get("data.children")
	if !children.IsArray() {
		data := v.Get("data")
		if !data.IsObject() {
			return nil
		}
		return visit(Thing{Path: join(path, "data"), Kind: v.Get("kind").String(), Data: data}, fn)
	}

	for i, child := range children.Array() {
		data := child.Get("data")
		if !data.IsObject() {
			continue
		}
		thing := Thing{
			Path: join(path, "data.children."+strconv.Itoa(i)+".data"),
			Kind: child.Get("kind").String(),
			Data: data,
		}
		if err := visit(thing, fn); err != nil {
			return err
		}
	}
	return nil
}

// visit reports a thing, then descends into its replies.
func visit(t Thing, fn func(Thing) error) error {
	if err := fn(t); err != nil {
		return err
	}
	if replies := t.Data.Get("replies"); replies.IsObject() {
		return walk(replies, t.Path+".replies", fn)
	}
	return nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

type edit struct {
	path   string
	result *mdspan.Result
}

// Annotate returns a copy of doc with "<field>_annotated" results added
// next to every configured field, and the number of fields annotated.
// A null field counts as empty text.
func (a *Annotator) Annotate(doc []byte) ([]byte, int, error) {
	var edits []edit
	err := Walk(doc, func(t Thing) error {
		for _, name := range a.fields {
			v := t.Data.Get(name)
			if !v.Exists() || (v.Type != gjson.String && v.Type != gjson.Null) {
				continue
			}
			res, err := handlers[name](a.formatter, v.String())
			if err != nil {
				return fmt.Errorf("%s.%s: %w", t.Path, name, err)
			}
			edits = append(edits, edit{path: t.Path + "." + name + AnnotatedSuffix, result: res})
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	out := doc
	for _, e := range edits {
		out, err = sjson.SetBytes(out, e.path, e.result)
		if err != nil {
			return nil, 0, fmt.Errorf("writing %s: %w", e.path, err)
		}
	}
	return out, len(edits), nil
}
