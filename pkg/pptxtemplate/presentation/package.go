package presentation

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// MaxUncompressedSize bounds the total declared size of all parts in a
// package. Archives claiming more are refused before any part is inflated.
const MaxUncompressedSize = 1 << 30

// part is one entry of the OPC zip container.
type part struct {
	header zip.FileHeader
	data   []byte
}

// opcPackage holds every part of a presentation in memory, in archive order.
type opcPackage struct {
	parts []*part
	index map[string]*part
}

// relationship is one entry of a .rels part.
type relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

func readPackage(filename string) (*opcPackage, error) {
	r, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPresentation, err)
	}
	defer r.Close()

	var total uint64
	for _, f := range r.File {
		total += f.UncompressedSize64
	}
	if total > MaxUncompressedSize {
		return nil, fmt.Errorf("%w: declared uncompressed size %d exceeds %d bytes", ErrNotPresentation, total, MaxUncompressedSize)
	}

	pkg := &opcPackage{index: make(map[string]*part, len(r.File))}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(io.LimitReader(rc, int64(MaxUncompressedSize)))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		p := &part{header: f.FileHeader, data: data}
		pkg.parts = append(pkg.parts, p)
		pkg.index[f.Name] = p
	}
	return pkg, nil
}

func (pkg *opcPackage) get(name string) ([]byte, bool) {
	p, ok := pkg.index[name]
	if !ok {
		return nil, false
	}
	return p.data, true
}

func (pkg *opcPackage) set(name string, data []byte) {
	if p, ok := pkg.index[name]; ok {
		p.data = data
		return
	}
	p := &part{header: zip.FileHeader{Name: name, Method: zip.Deflate}, data: data}
	pkg.parts = append(pkg.parts, p)
	pkg.index[name] = p
}

func (pkg *opcPackage) writeTo(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, p := range pkg.parts {
		hdr := p.header
		hdr.CRC32 = 0
		hdr.CompressedSize64 = 0
		hdr.UncompressedSize64 = 0
		fw, err := zw.CreateHeader(&hdr)
		if err != nil {
			return fmt.Errorf("create part %s: %w", p.header.Name, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return fmt.Errorf("write part %s: %w", p.header.Name, err)
		}
	}
	return zw.Close()
}

// saveAs writes the package next to filename and renames it into place, so
// a failed write never leaves a truncated document behind.
func (pkg *opcPackage) saveAs(filename string) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, ".pptxtemplate-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := pkg.writeTo(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, filename)
}

// rels parses the relationships part belonging to partName. A part without
// relationships yields an empty map.
func (pkg *opcPackage) rels(partName string) (map[string]relationship, error) {
	result := make(map[string]relationship)
	data, ok := pkg.get(relsPathFor(partName))
	if !ok {
		return result, nil
	}
	doc, err := parseXML(data)
	if err != nil {
		return nil, fmt.Errorf("parse relationships of %s: %w", partName, err)
	}
	root := doc.Root()
	if root == nil {
		return result, nil
	}
	for _, el := range children(root, nsRels, "Relationship") {
		rel := relationship{
			ID:         el.SelectAttrValue("Id", ""),
			Type:       el.SelectAttrValue("Type", ""),
			Target:     el.SelectAttrValue("Target", ""),
			TargetMode: el.SelectAttrValue("TargetMode", ""),
		}
		if rel.ID != "" {
			result[rel.ID] = rel
		}
	}
	return result, nil
}

// relsPathFor returns the name of the relationships part for partName,
// e.g. ppt/slides/slide1.xml -> ppt/slides/_rels/slide1.xml.rels.
func relsPathFor(partName string) string {
	if partName == "" {
		return "_rels/.rels"
	}
	return path.Join(path.Dir(partName), "_rels", path.Base(partName)+".rels")
}

// resolveTarget resolves a relationship target relative to the part that
// owns the relationship.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(path.Dir(source), target)
}
