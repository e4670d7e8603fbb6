package xl

// Format is a cell format registered in the workbook's style table. The
// style table is owned elsewhere; worksheets only keep references and ask
// for the indices when writing.
type Format interface {
	// XFIndex is the cellXfs index used by the s attribute.
	XFIndex() int
	// DXFIndex is the differential format index used by conditional
	// formats and table columns.
	DXFIndex() int
}

// Style is a Format for callers that already know their indices.
type Style struct {
	XF  int
	DXF int
}

func (s Style) XFIndex() int  { return s.XF }
func (s Style) DXFIndex() int { return s.DXF }

func xfIndex(f Format) int {
	if f == nil {
		return 0
	}
	return f.XFIndex()
}
