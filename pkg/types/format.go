// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared types for the convertpdf pipeline:
// the supported input formats, configuration structs, and journal records.
package types

import (
	"path/filepath"
	"strings"
)

// Format identifies a document format accepted as conversion input.
type Format string

const (
	FormatDoc  Format = "doc"
	FormatDocx Format = "docx"
	FormatXls  Format = "xls"
	FormatXlsx Format = "xlsx"
	FormatPpt  Format = "ppt"
	FormatPptx Format = "pptx"
	FormatOdt  Format = "odt"
	FormatOds  Format = "ods"
	FormatOdp  Format = "odp"
	FormatRtf  Format = "rtf"
	FormatTxt  Format = "txt"
)

// formats lists every supported input format. The order is fixed and is the
// order reported to users.
var formats = []Format{
	FormatDoc, FormatDocx,
	FormatXls, FormatXlsx,
	FormatPpt, FormatPptx,
	FormatOdt, FormatOds, FormatOdp,
	FormatRtf, FormatTxt,
}

// Formats returns the supported input formats in their fixed order.
// The returned slice is a copy; the underlying set never changes.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// FormatStrings returns the supported extensions as plain strings, for
// error messages and CLI output.
func FormatStrings() []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}

// ParseFormat looks up the Format for a file extension, case-insensitively.
// The extension may carry a leading dot.
func ParseFormat(ext string) (Format, bool) {
	e := strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, f := range formats {
		if string(f) == e {
			return f, true
		}
	}
	return "", false
}

// FormatForPath reports the Format of a file path based on its extension.
func FormatForPath(path string) (Format, bool) {
	return ParseFormat(filepath.Ext(path))
}
