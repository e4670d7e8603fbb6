package xl

import (
	"strings"

	"github.com/adnsv/go-xlw/chart"
	"github.com/adnsv/go-xlw/ooxml"
)

// Default chart size in pixels.
const (
	DefaultChartWidth  = 480
	DefaultChartHeight = 288
)

// ImageOptions place and describe an image or chart. Zero values select
// the defaults.
type ImageOptions struct {
	XOffset, YOffset int // pixels from the top left of the cell
	XScale, YScale   float64
	Anchor           ObjectAnchor
	Description      string // alt text
	Decorative       bool
	URL              string // hyperlink, http(s)://, ftp://, mailto: or internal:
	Tip              string
}

type drawingKind int

const (
	drawingImage drawingKind = iota
	drawingChart
)

type drawingObject struct {
	kind          drawingKind
	row, col      int
	xOff, yOff    float64
	width, height float64 // pixels
	anchor        ObjectAnchor
	description   string
	decorative    bool
	url           string
	external      bool
	tip           string

	media *mediaRef
	chart *chart.Chart
}

// InsertImage places an image with its top left corner in cell (row, col).
// PNG, JPEG, GIF and BMP headers are read for the size and resolution.
func (w *Worksheet) InsertImage(row, col int, blob []byte, o *ImageOptions) error {
	if len(blob) == 0 {
		return ooxml.ErrNullParameter.New("image data")
	}
	info, err := ooxml.ReadImageInfo(blob)
	if err != nil {
		return err
	}
	return w.InsertImageInfo(row, col, blob, info, o)
}

// InsertImageInfo is InsertImage for callers that already know the image
// size and resolution.
func (w *Worksheet) InsertImageInfo(row, col int, blob []byte, info ooxml.ImageInfo, o *ImageOptions) error {
	if len(blob) == 0 {
		return ooxml.ErrNullParameter.New("image data")
	}
	if info.Type == "" || info.Width <= 0 || info.Height <= 0 {
		return ooxml.Invalid("image needs a type and a size")
	}
	if o == nil {
		o = &ImageOptions{}
	}
	if err := w.checkDimensions(row, col, true, true); err != nil {
		return err
	}
	xdpi, ydpi := info.XDPI, info.YDPI
	if xdpi <= 0 {
		xdpi = 96
	}
	if ydpi <= 0 {
		ydpi = 96
	}

	obj, err := newDrawingObject(drawingImage, row, col, o)
	if err != nil {
		return err
	}
	obj.width = float64(info.Width) * scale(o.XScale) * 96 / xdpi
	obj.height = float64(info.Height) * scale(o.YScale) * 96 / ydpi
	if obj.anchor == AnchorDefault {
		obj.anchor = MoveDontSize
	}
	if obj.description == "" && !obj.decorative {
		obj.description = "image." + info.Extension()
	}
	obj.media = w.mediaRegistry().add(blob, info)
	w.objects = append(w.objects, obj)
	return nil
}

// InsertChart embeds a chart with its top left corner in cell (row, col).
// A chart can be inserted once.
func (w *Worksheet) InsertChart(row, col int, c *chart.Chart, o *ImageOptions) error {
	if c == nil {
		return ooxml.ErrNullParameter.New("chart")
	}
	if o == nil {
		o = &ImageOptions{}
	}
	if err := w.checkDimensions(row, col, true, true); err != nil {
		return err
	}
	obj, err := newDrawingObject(drawingChart, row, col, o)
	if err != nil {
		return err
	}
	if err := c.Attach(true); err != nil {
		return err
	}
	obj.width = DefaultChartWidth * scale(o.XScale)
	obj.height = DefaultChartHeight * scale(o.YScale)
	if obj.anchor == AnchorDefault {
		obj.anchor = MoveAndSize
	}
	obj.chart = c
	w.charts = append(w.charts, c)
	if c.ID() == 0 {
		c.SetID(len(w.charts))
	}
	w.objects = append(w.objects, obj)
	return nil
}

// SetBackground tiles an image behind the cells.
func (w *Worksheet) SetBackground(blob []byte) error {
	if len(blob) == 0 {
		return ooxml.ErrNullParameter.New("background image")
	}
	info, err := ooxml.ReadImageInfo(blob)
	if err != nil {
		return err
	}
	w.background = w.mediaRegistry().add(blob, info)
	return nil
}

// Charts returns the charts embedded in the sheet.
func (w *Worksheet) Charts() []*chart.Chart {
	return w.charts
}

// HasDrawing reports whether the sheet needs a drawing part.
func (w *Worksheet) HasDrawing() bool {
	return len(w.objects) > 0
}

func newDrawingObject(kind drawingKind, row, col int, o *ImageOptions) (*drawingObject, error) {
	obj := &drawingObject{
		kind:        kind,
		row:         row,
		col:         col,
		xOff:        float64(o.XOffset),
		yOff:        float64(o.YOffset),
		anchor:      o.Anchor,
		description: o.Description,
		decorative:  o.Decorative,
		tip:         o.Tip,
	}
	if o.Anchor < AnchorDefault || o.Anchor > MoveAndSizeAfter {
		return nil, ooxml.Invalid("unknown object anchor %d", o.Anchor)
	}
	if o.URL != "" && kind == drawingImage {
		if err := obj.setURL(o.URL); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func (obj *drawingObject) setURL(url string) error {
	if err := ooxml.CheckLength("image hyperlink", url, MaxURLLength); err != nil {
		return err
	}
	switch {
	case strings.HasPrefix(url, "internal:"):
		obj.url = "#" + strings.TrimPrefix(url, "internal:")
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"), strings.HasPrefix(url, "ftp://"),
		strings.HasPrefix(url, "ftps://"), strings.HasPrefix(url, "mailto:"):
		obj.url = escapeURL(url)
		obj.external = true
	default:
		return ooxml.Invalid("unknown hyperlink scheme in %q", url)
	}
	return nil
}

func scale(s float64) float64 {
	if s <= 0 {
		return 1
	}
	return s
}
