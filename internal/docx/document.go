package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// NamespaceWord is the WordprocessingML main namespace.
const NamespaceWord = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Document is the body of a WordprocessingML document.
type Document struct {
	body *etree.Element
}

// Paragraph is a w:p element.
type Paragraph struct {
	el *etree.Element
}

// Run is a w:r element: a span of text sharing one formatting definition.
type Run struct {
	el *etree.Element
}

// Paragraphs returns every paragraph in document order, including paragraphs in
// table cells at any nesting depth.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	walkParagraphs(d.body, func(p *etree.Element) {
		out = append(out, &Paragraph{el: p})
	})
	return out
}

// walkParagraphs visits the paragraphs of a paragraph container (the body or a
// table cell), descending into tables.
func walkParagraphs(container *etree.Element, visit func(*etree.Element)) {
	for _, child := range container.ChildElements() {
		switch {
		case isWord(child, "p"):
			visit(child)
		case isWord(child, "tbl"):
			for _, row := range wordChildren(child, "tr") {
				for _, cell := range wordChildren(row, "tc") {
					walkParagraphs(cell, visit)
				}
			}
		}
	}
}

// Runs returns the paragraph's direct w:r children in order.
func (p *Paragraph) Runs() []*Run {
	els := wordChildren(p.el, "r")
	runs := make([]*Run, len(els))
	for i, el := range els {
		runs[i] = &Run{el: el}
	}
	return runs
}

// Text concatenates the text of all runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// collapse rewrites the paragraph as a single run holding text. The first run
// keeps its properties; the remaining runs are removed.
func (p *Paragraph) collapse(text string) {
	runs := p.Runs()
	if len(runs) == 0 {
		return
	}
	for _, r := range runs[1:] {
		p.el.RemoveChild(r.el)
	}
	runs[0].SetText(text)
}

// Text returns the run text. Tabs read as '\t' and text-wrapping breaks as '\n'.
func (r *Run) Text() string {
	var sb strings.Builder
	for _, c := range r.el.ChildElements() {
		switch {
		case isWord(c, "t"):
			sb.WriteString(c.Text())
		case isWord(c, "tab"):
			sb.WriteByte('\t')
		case isWord(c, "cr"):
			sb.WriteByte('\n')
		case isWord(c, "br"):
			if t := attrValue(c, "type"); t == "" || t == "textWrapping" {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

// SetText replaces the run content with text, keeping w:rPr.
func (r *Run) SetText(text string) {
	for _, c := range r.el.ChildElements() {
		if !isWord(c, "rPr") {
			r.el.RemoveChild(c)
		}
	}

	var buf strings.Builder
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		s := buf.String()
		t := r.el.CreateElement(r.tag("t"))
		if strings.TrimSpace(s) != s {
			t.CreateAttr("xml:space", "preserve")
		}
		t.SetText(s)
		buf.Reset()
	}

	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			r.el.CreateElement(r.tag("tab"))
		case '\n', '\r':
			flush()
			r.el.CreateElement(r.tag("br"))
		default:
			buf.WriteRune(ch)
		}
	}
	flush()
}

// tag builds a child tag using the run's own namespace prefix.
func (r *Run) tag(local string) string {
	if r.el.Space == "" {
		return local
	}
	return r.el.Space + ":" + local
}

func isWord(el *etree.Element, local string) bool {
	return el.Tag == local && el.NamespaceURI() == NamespaceWord
}

func wordChildren(el *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if isWord(c, local) {
			out = append(out, c)
		}
	}
	return out
}

func firstWordChild(el *etree.Element, local string) *etree.Element {
	for _, c := range el.ChildElements() {
		if isWord(c, local) {
			return c
		}
	}
	return nil
}

func attrValue(el *etree.Element, local string) string {
	for _, a := range el.Attr {
		if a.Key == local {
			return a.Value
		}
	}
	return ""
}
