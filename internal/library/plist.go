package library

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// parsePlist decodes an Apple property-list XML document into Go values.
//
// Supported value elements cover the subset iTunes emits: dict, array,
// string, integer, real, date, true, false, and data. Dicts decode to
// map[string]any, arrays to []any, integers to int64, reals to float64,
// dates to time.Time, and data payloads to raw bytes.
func parsePlist(r io.Reader) (any, error) {
	d := xml.NewDecoder(r)

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("document contains no plist element")
		}
		if err != nil {
			return nil, fmt.Errorf("malformed XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "plist" {
			return nil, fmt.Errorf("unexpected root element <%s>", start.Name.Local)
		}

		return parsePlistRoot(d)
	}
}

// parsePlistRoot reads the single value inside <plist>...</plist>.
func parsePlistRoot(d *xml.Decoder) (any, error) {
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, fmt.Errorf("malformed XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return parseValue(d, t)
		case xml.EndElement:
			return nil, fmt.Errorf("plist element is empty")
		}
	}
}

// parseValue decodes one plist value element, consuming through its end tag.
func parseValue(d *xml.Decoder, start xml.StartElement) (any, error) {
	switch start.Name.Local {
	case "dict":
		return parseDict(d)
	case "array":
		return parseArray(d)
	case "string":
		return collectText(d, start)
	case "integer":
		text, err := collectText(d, start)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", text, err)
		}
		return n, nil
	case "real":
		text, err := collectText(d, start)
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid real %q: %w", text, err)
		}
		return f, nil
	case "date":
		text, err := collectText(d, start)
		if err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", text, err)
		}
		return ts, nil
	case "true":
		if err := d.Skip(); err != nil {
			return nil, err
		}
		return true, nil
	case "false":
		if err := d.Skip(); err != nil {
			return nil, err
		}
		return false, nil
	case "data":
		text, err := collectText(d, start)
		if err != nil {
			return nil, err
		}
		raw, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(text), ""))
		if err != nil {
			return nil, fmt.Errorf("invalid data payload: %w", err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported plist element <%s>", start.Name.Local)
	}
}

// parseDict decodes alternating <key>/<value> pairs until </dict>.
func parseDict(d *xml.Decoder) (map[string]any, error) {
	dict := make(map[string]any)
	var pendingKey *string

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, fmt.Errorf("malformed XML in dict: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "key" {
				if pendingKey != nil {
					return nil, fmt.Errorf("dict key %q has no value", *pendingKey)
				}
				key, err := collectText(d, t)
				if err != nil {
					return nil, err
				}
				pendingKey = &key
				continue
			}

			if pendingKey == nil {
				return nil, fmt.Errorf("dict value <%s> has no preceding key", t.Name.Local)
			}
			value, err := parseValue(d, t)
			if err != nil {
				return nil, err
			}
			dict[*pendingKey] = value
			pendingKey = nil

		case xml.EndElement:
			if pendingKey != nil {
				return nil, fmt.Errorf("dict key %q has no value", *pendingKey)
			}
			return dict, nil
		}
	}
}

// parseArray decodes value elements until </array>.
func parseArray(d *xml.Decoder) ([]any, error) {
	items := []any{}

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, fmt.Errorf("malformed XML in array: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			value, err := parseValue(d, t)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		case xml.EndElement:
			return items, nil
		}
	}
}

// collectText reads character data until the element's end tag.
func collectText(d *xml.Decoder, start xml.StartElement) (string, error) {
	var b strings.Builder

	for {
		tok, err := d.Token()
		if err != nil {
			return "", fmt.Errorf("malformed XML in <%s>: %w", start.Name.Local, err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			return b.String(), nil
		case xml.StartElement:
			return "", fmt.Errorf("unexpected element <%s> inside <%s>", t.Name.Local, start.Name.Local)
		}
	}
}
