package xl

import (
	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
)

// Default comment box size in pixels.
const (
	DefaultCommentWidth  = 128
	DefaultCommentHeight = 74
)

// CommentVisibility overrides the sheet-wide comment visibility.
type CommentVisibility int

const (
	CommentDefault CommentVisibility = iota
	CommentVisible
	CommentHidden
)

// CommentOptions are the optional comment settings. Zero values select the
// Excel defaults.
type CommentOptions struct {
	Visible    CommentVisibility
	Author     string
	Width      int // pixels
	Height     int // pixels
	XScale     float64
	YScale     float64
	Color      ooxml.Color // box fill, defaults to pale yellow
	FontName   string
	FontSize   float64
	FontFamily int
	// Start is the cell holding the top left corner of the box, e.g.
	// "C2". By default the box sits to the upper right of the cell.
	Start   string
	XOffset int
	YOffset int
}

type comment struct {
	row, col int
	text     string
	author   string
	visible  CommentVisibility
	color    ooxml.Color
	font     string
	fontSize float64
	family   int
	startRow int
	startCol int
	xOffset  int
	yOffset  int
	width    float64
	height   float64
}

type commentDefaults struct {
	visible bool
	author  string
}

// ShowComments makes all comments visible unless hidden individually.
func (w *Worksheet) ShowComments() {
	w.commentOpts.visible = true
}

// SetCommentAuthor sets the author used by comments that do not name one.
func (w *Worksheet) SetCommentAuthor(author string) {
	w.commentOpts.author = author
}

// WriteComment attaches a note to a cell.
func (w *Worksheet) WriteComment(row, col int, text string, o *CommentOptions) error {
	if o == nil {
		o = &CommentOptions{}
	}
	if err := w.checkDimensions(row, col, true, true); err != nil {
		return err
	}
	if err := ooxml.CheckLength("comment", text, ooxml.MaxString); err != nil {
		return err
	}
	if o.Author != "" {
		if err := ooxml.CheckLength("comment author", o.Author, ooxml.MaxMediumString); err != nil {
			return err
		}
	}

	c := &comment{
		row:      row,
		col:      col,
		text:     ooxml.EscapeControl(text),
		author:   o.Author,
		visible:  o.Visible,
		color:    o.Color,
		font:     o.FontName,
		fontSize: o.FontSize,
		family:   o.FontFamily,
		width:    DefaultCommentWidth,
		height:   DefaultCommentHeight,
	}
	if c.font == "" {
		c.font = "Tahoma"
	}
	if c.fontSize <= 0 {
		c.fontSize = 8
	}
	if c.family == 0 {
		c.family = 2
	}
	c.defaultPlacement()
	if o.Start != "" {
		r, col, err := coord.ParseCell(o.Start)
		if err != nil {
			return err
		}
		c.startRow, c.startCol = r, col
	}
	if o.XOffset != 0 {
		c.xOffset = o.XOffset
	}
	if o.YOffset != 0 {
		c.yOffset = o.YOffset
	}
	if o.Width > 0 {
		c.width = float64(o.Width)
	}
	if o.Height > 0 {
		c.height = float64(o.Height)
	}
	if o.XScale > 0 {
		c.width *= o.XScale
	}
	if o.YScale > 0 {
		c.height *= o.YScale
	}
	w.comments.Set(keyOf(row, col), c)
	return nil
}

// defaultPlacement puts the box to the upper right of the cell, pulling it
// back in at the sheet edges the way Excel does.
func (c *comment) defaultPlacement() {
	const rowMax, colMax = coord.RowMax, coord.ColMax
	switch c.row {
	case 0:
		c.yOffset, c.startRow = 2, 0
	case rowMax - 3:
		c.yOffset, c.startRow = 16, rowMax-7
	case rowMax - 2:
		c.yOffset, c.startRow = 16, rowMax-6
	case rowMax - 1:
		c.yOffset, c.startRow = 14, rowMax-5
	default:
		c.yOffset, c.startRow = 10, c.row-1
	}
	switch c.col {
	case colMax - 3:
		c.xOffset, c.startCol = 49, colMax-6
	case colMax - 2:
		c.xOffset, c.startCol = 49, colMax-5
	case colMax - 1:
		c.xOffset, c.startCol = 49, colMax-4
	default:
		c.xOffset, c.startCol = 15, c.col+1
	}
}

func (c *comment) isVisible(sheetDefault bool) bool {
	switch c.visible {
	case CommentVisible:
		return true
	case CommentHidden:
		return false
	}
	return sheetDefault
}

// HasComments reports whether the sheet needs comment and VML parts.
func (w *Worksheet) HasComments() bool {
	return w.comments.Len() > 0
}

func (w *Worksheet) commentAuthor(c *comment) string {
	if c.author == "" {
		return w.commentOpts.author
	}
	return c.author
}

// commentBox places the comment box against the current row and column
// sizes.
func (w *Worksheet) commentBox(c *comment) vertices {
	return w.positionObject(c.startRow, c.startCol,
		float64(c.xOffset), float64(c.yOffset), c.width, c.height, AnchorDefault)
}
