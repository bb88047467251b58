// Package source reads bookmark documents into UTF-8 text.
// All I/O and charset errors are reported here, before decoding starts.
package source

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Read returns the content of r as UTF-8.
//
// With an empty label the encoding is detected: a byte order mark wins,
// then valid UTF-8, then a <META> charset declaration, then windows-1252.
// Otherwise label names the encoding (e.g. "windows-1252", "koi8-r").
func Read(r io.Reader, label string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("cannot read input: %w", err)
	}

	enc, err := pickEncoding(data, label)
	if err != nil {
		return "", err
	}

	text, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("cannot decode input as %s: %w", describe(label), err)
	}
	return string(text), nil
}

// ReadFile opens path and returns its content as UTF-8 text.
func ReadFile(path, label string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	text, err := Read(file, label)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

func pickEncoding(data []byte, label string) (encoding.Encoding, error) {
	if label != "" {
		enc, _ := charset.Lookup(label)
		if enc == nil {
			return nil, fmt.Errorf("unsupported encoding %q", label)
		}
		return enc, nil
	}

	enc, name, certain := charset.DetermineEncoding(data, "text/html")
	if name == "utf-8" || (!certain && utf8.Valid(data)) {
		// UTF8BOM drops a leading BOM if one is present.
		return unicode.UTF8BOM, nil
	}
	return enc, nil
}

func describe(label string) string {
	if label == "" {
		return "detected encoding"
	}
	return label
}
