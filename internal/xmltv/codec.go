package xmltv

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var doctypePattern = regexp.MustCompile(`(?is)<!DOCTYPE[^>]*>`)

// Load reads and parses an XMLTV document from path.
func Load(path string) (*TV, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read guide file: %w", err)
	}
	return Parse(data)
}

// Parse decodes XMLTV document bytes.
func Parse(data []byte) (*TV, error) {
	var doc TV
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse guide xml: %w", err)
	}
	doc.Doctype = prologDoctype(data)
	return &doc, nil
}

// prologDoctype returns the DOCTYPE declaration preceding the root element,
// or "" when the document has none.
func prologDoctype(data []byte) string {
	match := doctypePattern.FindIndex(data)
	if match == nil {
		return ""
	}
	if root := bytes.Index(data, []byte("<tv")); root >= 0 && match[0] > root {
		return ""
	}
	return string(data[match[0]:match[1]])
}

// Save writes the document to path atomically (temp file + rename) with an
// XML declaration, creating parent directories as needed.
func Save(doc *TV, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create guide directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp guide file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // cleanup on failure
		return fmt.Errorf("rename temp guide file: %w", err)
	}

	return nil
}

// Marshal encodes the document with an XML declaration, re-emitting the
// input's DOCTYPE line when one was captured.
func Marshal(doc *TV) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode guide xml: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(doc.Doctype)+len(body)+2)
	out = append(out, xml.Header...)
	if doc.Doctype != "" {
		out = append(out, doc.Doctype...)
		out = append(out, '\n')
	}
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
