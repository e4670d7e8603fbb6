package ooxml

import (
	"fmt"
	"io"
	"slices"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

// Namespaces used by the part writers.
const (
	NSMain         = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	NSRelations    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NSPackageRels  = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSDrawingML    = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NSChart        = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	NSSheetDrawing = "http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing"
	NSVML          = "urn:schemas-microsoft-com:vml"
	NSOffice       = "urn:schemas-microsoft-com:office:office"
	NSExcel        = "urn:schemas-microsoft-com:office:excel"
)

// Relationship types.
const (
	RelHyperlink  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	RelDrawing    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/drawing"
	RelVMLDrawing = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/vmlDrawing"
	RelComments   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/comments"
	RelTable      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/table"
	RelImage      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	RelChart      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
)

// Rel is one entry of a part's relationship file.
type Rel struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Rels collects the relationships of one part. Ids are handed out in
// insertion order starting at rId1.
type Rels struct {
	list []Rel
}

// Add appends a relationship and returns its id.
func (rr *Rels) Add(typ, target string, external bool) string {
	id := fmt.Sprintf("rId%d", len(rr.list)+1)
	rr.list = append(rr.list, Rel{ID: id, Type: typ, Target: target, External: external})
	return id
}

// Find returns the id of an existing relationship with the same type and
// target, so shared media is only referenced once per part.
func (rr *Rels) Find(typ, target string) (string, bool) {
	for _, r := range rr.list {
		if r.Type == typ && r.Target == target && !r.External {
			return r.ID, true
		}
	}
	return "", false
}

// Len returns the number of relationships.
func (rr *Rels) Len() int {
	return len(rr.list)
}

// List returns the relationships in id order.
func (rr *Rels) List() []Rel {
	return rr.list
}

// WriteTo emits the relationship part.
func (rr *Rels) WriteTo(w io.Writer) error {
	x := NewDoc(w)
	x.OTag("Relationships")
	x.Attr("xmlns", NSPackageRels)
	for _, r := range rr.list {
		x.OTag("Relationship").Attr("Id", r.ID).Attr("Type", r.Type).Attr("Target", r.Target)
		if r.External {
			x.Attr("TargetMode", "External")
		}
		x.CTag()
	}
	x.CTag()
	return x.Close("relationships")
}

// Enumerate walks a map in key order.
func Enumerate[M ~map[K]V, K constraints.Ordered, V any](m M, callback func(k K, v V) error) error {
	keys := maps.Keys(m)
	slices.Sort(keys)
	for _, k := range keys {
		err := callback(k, m[k])
		if err != nil {
			return err
		}
	}
	return nil
}
