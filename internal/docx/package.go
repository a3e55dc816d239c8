package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// MainPart is the package part holding the document body.
const MainPart = "word/document.xml"

// ErrNotDocx is returned when bytes cannot be opened as a WordprocessingML package.
var ErrNotDocx = errors.New("not a docx document")

// Package is an opened DOCX file. Only the main document part is parsed; every
// other part is carried through untouched when the package is saved.
type Package struct {
	parts []*zip.File
	doc   *etree.Document
}

// Open parses a DOCX file held in memory.
func Open(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}

	var main *zip.File
	for _, f := range zr.File {
		if f.Name == MainPart {
			main = f
			break
		}
	}
	if main == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrNotDocx, MainPart)
	}

	rc, err := main.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrNotDocx, MainPart, err)
	}
	defer rc.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(rc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrNotDocx, MainPart, err)
	}
	if body(doc) == nil {
		return nil, fmt.Errorf("%w: %s has no body", ErrNotDocx, MainPart)
	}

	return &Package{parts: zr.File, doc: doc}, nil
}

// Document returns the editable view of the main document body.
func (p *Package) Document() *Document {
	return &Document{body: body(p.doc)}
}

// Clone returns a package with its own copy of the document tree, so the clone
// can be merged without affecting p. Untouched parts are shared read-only.
func (p *Package) Clone() *Package {
	return &Package{parts: p.parts, doc: p.doc.Copy()}
}

// Save writes the package as a DOCX zip, preserving part order.
func (p *Package) Save(w io.Writer) error {
	mainXML, err := p.doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serializing %s: %w", MainPart, err)
	}

	zw := zip.NewWriter(w)
	for _, f := range p.parts {
		if f.Name != MainPart {
			if err := zw.Copy(f); err != nil {
				return fmt.Errorf("copying part %s: %w", f.Name, err)
			}
			continue
		}
		entry, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return fmt.Errorf("creating part %s: %w", f.Name, err)
		}
		if _, err := entry.Write(mainXML); err != nil {
			return fmt.Errorf("writing part %s: %w", f.Name, err)
		}
	}
	return zw.Close()
}

// Bytes returns the saved package.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func body(doc *etree.Document) *etree.Element {
	root := doc.Root()
	if root == nil || !isWord(root, "document") {
		return nil
	}
	return firstWordChild(root, "body")
}
