package xl

import (
	"regexp"
	"strings"

	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
)

// Excel limits.
const (
	MaxURLLength     = 2079
	MaxSheetURLs     = 65530
	maxTooltipLength = 255
)

type hyperlink struct {
	row, col int
	external bool
	target   string // external links only
	location string
	display  string
	tooltip  string
}

var (
	urlEscaper = strings.NewReplacer(
		"%", "%25", `"`, "%22", " ", "%20", "<", "%3C", ">", "%3E",
		"[", "%5B", "]", "%5D", "^", "%5E", "`", "%60", "{", "%7B", "}", "%7D",
	)
	escapedURL = regexp.MustCompile(`%[0-9a-fA-F]{2}`)
	driveRoot  = regexp.MustCompile(`^[A-Za-z]:`)
)

func escapeURL(s string) string {
	if escapedURL.MatchString(s) {
		return s
	}
	return urlEscaper.Replace(s)
}

// WriteURL writes a hyperlink cell showing the URL itself.
func (w *Worksheet) WriteURL(row, col int, url string, f Format) error {
	return w.WriteURLOpt(row, col, url, f, "", "")
}

// WriteURLOpt writes a hyperlink cell. Supported forms are http://,
// https://, ftp://, ftps://, mailto:, internal:Sheet!A1 for a location in
// the workbook, and external:path for a file, optionally with #location.
// An empty display shows the link text.
func (w *Worksheet) WriteURLOpt(row, col int, url string, f Format, display, tooltip string) error {
	if url == "" {
		return ooxml.ErrNullParameter.New("url")
	}
	if err := w.checkCell(row, col); err != nil {
		return err
	}
	if tooltip != "" {
		if err := ooxml.CheckLength("hyperlink tooltip", tooltip, maxTooltipLength); err != nil {
			return err
		}
	}

	h := &hyperlink{row: row, col: col, tooltip: tooltip, external: true}
	text := url
	switch {
	case strings.HasPrefix(url, "internal:"):
		h.external = false
		url = strings.TrimPrefix(url, "internal:")
		text = url
		h.location = url
	case strings.HasPrefix(url, "external:"):
		url = strings.TrimPrefix(url, "external:")
		text = url
		url = strings.ReplaceAll(url, "/", `\`)
		if driveRoot.MatchString(url) || strings.HasPrefix(url, `\\`) {
			url = "file:///" + url
		}
	case strings.HasPrefix(url, "mailto:"):
		text = strings.TrimPrefix(url, "mailto:")
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"),
		strings.HasPrefix(url, "ftp://"), strings.HasPrefix(url, "ftps://"):
	default:
		return ooxml.Invalid("unknown hyperlink scheme in %q", url)
	}

	if h.external {
		if i := strings.IndexByte(url, '#'); i >= 0 {
			h.location = url[i+1:]
			url = url[:i]
		}
		h.target = escapeURL(url)
		if ooxml.Len(h.target) > MaxURLLength || ooxml.Len(h.location) > MaxURLLength {
			return ooxml.Invalid("hyperlink %q exceeds %d characters", url, MaxURLLength)
		}
	} else if ooxml.Len(h.location) > MaxURLLength {
		return ooxml.Invalid("hyperlink location %q exceeds %d characters", h.location, MaxURLLength)
	}

	if w.hyperlinks.Len() >= MaxSheetURLs {
		if _, ok := w.hyperlinks.Get(keyOf(row, col)); !ok {
			w.log.WithField("cell", coord.CellToString(row, col)).
				Warnf("ignoring hyperlink, a sheet holds at most %d", MaxSheetURLs)
			return nil
		}
	}

	if display != "" {
		text = display
	}
	h.display = text
	if f == nil {
		f = w.opts.HyperlinkFormat
	}
	if err := w.WriteString(row, col, text, f); err != nil {
		return err
	}
	w.hyperlinks.Set(keyOf(row, col), h)
	return nil
}

func (w *Worksheet) writeHyperlinks(x *ooxml.Doc, ids map[cellKey]string) {
	if w.hyperlinks.Len() == 0 {
		return
	}
	x.OTag("hyperlinks")
	for k, h := range w.hyperlinks.All() {
		x.OTag("hyperlink").Attr("ref", coord.CellToString(h.row, h.col))
		if h.external {
			x.Attr("r:id", ids[k])
			if h.location != "" {
				x.Attr("location", h.location)
			}
			if h.tooltip != "" {
				x.Attr("tooltip", h.tooltip)
			}
		} else {
			x.Attr("location", h.location)
			if h.tooltip != "" {
				x.Attr("tooltip", h.tooltip)
			}
			x.Attr("display", h.display)
		}
		x.CTag()
	}
	x.CTag()
}
