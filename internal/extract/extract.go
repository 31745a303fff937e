// Package extract pulls plain text out of uploaded documents.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// Supported reports whether filename has an extension File can read.
func Supported(filename string) bool {
	switch ext(filename) {
	case ".pdf", ".docx", ".txt":
		return true
	}
	return false
}

// File returns the text stored at path. The parser is picked from the
// extension of filename, which is the name the client uploaded.
func File(path, filename string) (string, error) {
	switch e := ext(filename); e {
	case ".pdf":
		return PDF(path)
	case ".docx":
		return DOCX(path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read text: %w", err)
		}
		if !utf8.Valid(data) {
			return "", fmt.Errorf("read text: not valid UTF-8")
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, e)
	}
}

// PDF joins the plain text of every page with newlines, in page order.
func PDF(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("parse pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if f != nil {
		defer f.Close()
	}
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range p.Fonts() {
			font := p.Font(name)
			fonts[name] = &font
		}
		s, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, s)
	}
	return strings.Join(pages, "\n"), nil
}

// DOCX joins the text of every paragraph in word/document.xml with newlines.
func DOCX(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		paragraphs, err := docxParagraphs(content)
		if err != nil {
			return "", err
		}
		return strings.Join(paragraphs, "\n"), nil
	}
	return "", fmt.Errorf("open docx: word/document.xml not found")
}

// docxParagraphs returns paragraph text in the order paragraphs close. A
// paragraph nested inside another one, as in a text box, becomes its own
// entry and does not disturb the text of the paragraph around it.
// mc:Fallback copies of drawings are skipped so text boxes are read once.
func docxParagraphs(content []byte) ([]string, error) {
	var (
		paragraphs []string
		open       []*strings.Builder
	)
	write := func(s string) {
		if n := len(open); n > 0 {
			open[n-1].WriteString(s)
		}
	}

	decoder := xml.NewDecoder(bytes.NewReader(content))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch se := token.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "t":
				var s string
				if err := decoder.DecodeElement(&s, &se); err != nil {
					return nil, fmt.Errorf("parse document.xml: %w", err)
				}
				write(s)
			case "tab":
				write("\t")
			case "br", "cr":
				write("\n")
			case "Fallback":
				if err := decoder.Skip(); err != nil {
					return nil, fmt.Errorf("parse document.xml: %w", err)
				}
			}
		case xml.EndElement:
			if se.Name.Local == "p" && len(open) > 0 {
				n := len(open) - 1
				paragraphs = append(paragraphs, open[n].String())
				open = open[:n]
			}
		}
	}
	return paragraphs, nil
}

func ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
