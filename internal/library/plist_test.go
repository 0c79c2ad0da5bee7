package library

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParsePlist_Values(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want any
	}{
		{
			name: "string",
			xml:  `<plist version="1.0"><string>hello</string></plist>`,
			want: "hello",
		},
		{
			name: "string with entities",
			xml:  `<plist version="1.0"><string>Guns N&#39; Roses &amp; Friends</string></plist>`,
			want: "Guns N' Roses & Friends",
		},
		{
			name: "integer",
			xml:  `<plist version="1.0"><integer>2001</integer></plist>`,
			want: int64(2001),
		},
		{
			name: "negative integer",
			xml:  `<plist version="1.0"><integer>-5</integer></plist>`,
			want: int64(-5),
		},
		{
			name: "real",
			xml:  `<plist version="1.0"><real>3.5</real></plist>`,
			want: 3.5,
		},
		{
			name: "true",
			xml:  `<plist version="1.0"><true/></plist>`,
			want: true,
		},
		{
			name: "false",
			xml:  `<plist version="1.0"><false/></plist>`,
			want: false,
		},
		{
			name: "data",
			xml:  `<plist version="1.0"><data>aGVsbG8=</data></plist>`,
			want: []byte("hello"),
		},
		{
			name: "empty dict",
			xml:  `<plist version="1.0"><dict></dict></plist>`,
			want: map[string]any{},
		},
		{
			name: "dict with mixed values",
			xml: `<plist version="1.0"><dict>
				<key>Name</key><string>Mix</string>
				<key>Count</key><integer>12</integer>
				<key>Compilation</key><true/>
			</dict></plist>`,
			want: map[string]any{
				"Name":        "Mix",
				"Count":       int64(12),
				"Compilation": true,
			},
		},
		{
			name: "nested array",
			xml: `<plist version="1.0"><array>
				<string>a</string>
				<array><integer>1</integer><integer>2</integer></array>
			</array></plist>`,
			want: []any{"a", []any{int64(1), int64(2)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePlist(strings.NewReader(tt.xml))
			if err != nil {
				t.Fatalf("parsePlist() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parsePlist() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParsePlist_Date(t *testing.T) {
	got, err := parsePlist(strings.NewReader(`<plist version="1.0"><date>2010-06-15T12:30:00Z</date></plist>`))
	if err != nil {
		t.Fatalf("parsePlist() error = %v", err)
	}

	ts, ok := got.(time.Time)
	if !ok {
		t.Fatalf("parsePlist() = %T, want time.Time", got)
	}
	want := time.Date(2010, 6, 15, 12, 30, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("parsePlist() date = %v, want %v", ts, want)
	}
}

func TestParsePlist_DataWithWhitespace(t *testing.T) {
	// iTunes wraps base64 payloads across lines.
	doc := "<plist version=\"1.0\"><data>\n\taGVs\n\tbG8=\n</data></plist>"

	got, err := parsePlist(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parsePlist() error = %v", err)
	}
	if !bytes.Equal(got.([]byte), []byte("hello")) {
		t.Errorf("parsePlist() data = %q, want %q", got, "hello")
	}
}

func TestParsePlist_Errors(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"empty document", ""},
		{"no plist root", `<dict></dict>`},
		{"empty plist", `<plist version="1.0"></plist>`},
		{"truncated document", `<plist version="1.0"><dict><key>Name</key>`},
		{"bad integer", `<plist version="1.0"><integer>twelve</integer></plist>`},
		{"bad date", `<plist version="1.0"><date>yesterday</date></plist>`},
		{"bad data", `<plist version="1.0"><data>!!!</data></plist>`},
		{"unsupported element", `<plist version="1.0"><blob>x</blob></plist>`},
		{"key without value", `<plist version="1.0"><dict><key>Name</key></dict></plist>`},
		{"value without key", `<plist version="1.0"><dict><string>orphan</string></dict></plist>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parsePlist(strings.NewReader(tt.xml)); err == nil {
				t.Error("parsePlist() expected error, got nil")
			}
		})
	}
}
