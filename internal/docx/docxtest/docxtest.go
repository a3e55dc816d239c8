// Package docxtest builds small in-memory DOCX files for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// DocumentXML wraps body content in a w:document element.
func DocumentXML(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`
}

// Build returns a DOCX file whose body holds the given WordprocessingML.
func Build(body string) []byte {
	return BuildParts(map[string]string{
		"[Content_Types].xml": contentTypes,
		"_rels/.rels":         rootRels,
		"word/document.xml":   DocumentXML(body),
	})
}

// BuildParts zips the given parts. Part order is fixed for reproducible output.
func BuildParts(parts map[string]string) []byte {
	order := []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"}
	for name := range parts {
		if !contains(order, name) {
			order = append(order, name)
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		content, ok := parts[name]
		if !ok {
			continue
		}
		w, err := zw.Create(name)
		if err != nil {
			panic(fmt.Sprintf("docxtest: creating %s: %v", name, err))
		}
		if _, err := w.Write([]byte(content)); err != nil {
			panic(fmt.Sprintf("docxtest: writing %s: %v", name, err))
		}
	}
	if err := zw.Close(); err != nil {
		panic(fmt.Sprintf("docxtest: closing zip: %v", err))
	}
	return buf.Bytes()
}

// Paragraph builds a w:p from runs.
func Paragraph(runs ...string) string {
	return "<w:p>" + strings.Join(runs, "") + "</w:p>"
}

// Run builds a plain w:r.
func Run(text string) string {
	return `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

// BoldRun builds a bold w:r.
func BoldRun(text string) string {
	return `<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

// Table builds a w:tbl; each row is a slice of cell contents.
func Table(rows ...[]string) string {
	var sb strings.Builder
	sb.WriteString("<w:tbl>")
	for _, row := range rows {
		sb.WriteString("<w:tr>")
		for _, cell := range row {
			sb.WriteString("<w:tc>" + cell + "</w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
	return sb.String()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
