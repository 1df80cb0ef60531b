// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package harness

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// element is a parsed XML element with comments, processing
// instructions and whitespace-only text removed.
type element struct {
	name     string
	attrs    []xml.Attr // sorted by name
	text     string     // trimmed character data
	children []*element
}

func parseXML(data []byte) (*element, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	var stack []*element
	var root *element
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local}
			for _, attr := range t.Attr {
				el.attrs = append(el.attrs, xml.Attr{Name: xml.Name{Local: attr.Name.Local}, Value: attr.Value})
			}
			sort.Slice(el.attrs, func(i, j int) bool {
				return el.attrs[i].Name.Local < el.attrs[j].Name.Local
			})
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			el := stack[len(stack)-1]
			el.text = strings.TrimSpace(el.text)
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) != 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("no root element")
	}
	return root, nil
}

// CompareXML reports the first difference between two documents, or
// an empty string if they are equivalent. Attribute order and
// whitespace around text are ignored; element order is not.
func CompareXML(got, want []byte) (string, error) {
	g, err := parseXML(got)
	if err != nil {
		return "", &ErrXML{Which: "got", Err: err}
	}
	w, err := parseXML(want)
	if err != nil {
		return "", &ErrXML{Which: "want", Err: err}
	}
	return compareElements("/"+w.name, g, w), nil
}

// EqualXML reports whether two documents are equivalent.
func EqualXML(got, want []byte) (bool, error) {
	diff, err := CompareXML(got, want)
	if err != nil {
		return false, err
	}
	return diff == "", nil
}

func compareElements(path string, got, want *element) string {
	if got.name != want.name {
		return fmt.Sprintf("%s: element: got %q, want %q", path, got.name, want.name)
	}
	if len(got.attrs) != len(want.attrs) {
		return fmt.Sprintf("%s: got %d attributes, want %d", path, len(got.attrs), len(want.attrs))
	}
	for i := range want.attrs {
		if got.attrs[i] != want.attrs[i] {
			return fmt.Sprintf("%s: attribute: got %s=%q, want %s=%q", path,
				got.attrs[i].Name.Local, got.attrs[i].Value, want.attrs[i].Name.Local, want.attrs[i].Value)
		}
	}
	if got.text != want.text {
		return fmt.Sprintf("%s: text: got %q, want %q", path, got.text, want.text)
	}
	if len(got.children) != len(want.children) {
		return fmt.Sprintf("%s: got %d children, want %d", path, len(got.children), len(want.children))
	}
	for i := range want.children {
		child := fmt.Sprintf("%s/%s[%d]", path, want.children[i].name, i+1)
		if diff := compareElements(child, got.children[i], want.children[i]); diff != "" {
			return diff
		}
	}
	return ""
}
