// Package xoppformat reads and writes the Xournal++ .xopp file format:
// gzipped XML with coordinates in 72 DPI.
package xoppformat

import (
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// DPI is the coordinate resolution of xopp files.
const DPI = 72.0

// FileVersion is the format version written by this package.
const FileVersion = "4"

// Tool names used on strokes.
const (
	ToolPen         = "pen"
	ToolHighlighter = "highlighter"
	ToolEraser      = "eraser"
)

// Background types and styles.
const (
	BackgroundSolid = "solid"

	StylePlain  = "plain"
	StyleLined  = "lined"
	StyleRuled  = "ruled"
	StyleGraph  = "graph"
	StyleDotted = "dotted"
)

// XoppFile is the root of a xopp document.
type XoppFile struct {
	XMLName xml.Name   `xml:"xournal"`
	Creator string     `xml:"creator,attr"`
	Version string     `xml:"fileversion,attr"`
	Title   string     `xml:"title"`
	Pages   []XoppPage `xml:"page"`
}

// XoppPage is a single page. Width and height are in 72 DPI units.
type XoppPage struct {
	Width      float64        `xml:"width,attr"`
	Height     float64        `xml:"height,attr"`
	Background XoppBackground `xml:"background"`
	Layers     []XoppLayer    `xml:"layer"`
}

type XoppBackground struct {
	Type  string    `xml:"type,attr"`
	Color XoppColor `xml:"color,attr"`
	Style string    `xml:"style,attr"`
}

type XoppLayer struct {
	Strokes []XoppStroke `xml:"stroke"`
	Texts   []XoppText   `xml:"text"`
	Images  []XoppImage  `xml:"image"`
}

// XoppStroke is a polyline. The element text holds the coordinates as
// alternating x y pairs.
type XoppStroke struct {
	Tool   string     `xml:"tool,attr"`
	Color  XoppColor  `xml:"color,attr"`
	Width  XoppWidths `xml:"width,attr"`
	Coords string     `xml:",chardata"`
}

type XoppText struct {
	Font  string    `xml:"font,attr"`
	Size  float64   `xml:"size,attr"`
	X     float64   `xml:"x,attr"`
	Y     float64   `xml:"y,attr"`
	Color XoppColor `xml:"color,attr"`
	Text  string    `xml:",chardata"`
}

// XoppImage is an embedded image, its data base64 encoded PNG.
type XoppImage struct {
	Left   float64 `xml:"left,attr"`
	Top    float64 `xml:"top,attr"`
	Right  float64 `xml:"right,attr"`
	Bottom float64 `xml:"bottom,attr"`
	Data   string  `xml:",chardata"`
}

// Write encodes file gzipped to w.
func Write(w io.Writer, file *XoppFile) error {
	zw := gzip.NewWriter(w)
	if _, err := io.WriteString(zw, xml.Header); err != nil {
		return fmt.Errorf("xoppformat: writing xml header: %w", err)
	}
	enc := xml.NewEncoder(zw)
	enc.Indent("", "  ")
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("xoppformat: encoding document: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("xoppformat: closing gzip stream: %w", err)
	}
	return nil
}

// Read decodes a gzipped xopp document from r.
func Read(r io.Reader) (*XoppFile, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("xoppformat: opening gzip stream: %w", err)
	}
	defer zr.Close()
	dec := xml.NewDecoder(zr)
	dec.CharsetReader = charset.NewReaderLabel
	var file XoppFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("xoppformat: decoding document: %w", err)
	}
	return &file, nil
}
