// Package ooxml holds the plumbing shared by every part writer: the tag
// writer setup, number and colour encodings, Excel string escaping, error
// kinds, package relationships, storage backends and media helpers.
package ooxml

import (
	"io"

	"github.com/adnsv/srw/xml"
)

// Doc is a compact tag writer over a single part stream. The underlying
// srw writer ignores output errors, so Doc remembers the first one and
// reports it from Close.
type Doc struct {
	*xml.Writer
	sink *sink
}

type sink struct {
	w   io.Writer
	n   int64
	err error
}

func (s *sink) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	s.n += int64(n)
	if err != nil {
		s.err = err
	}
	return n, err
}

// NewDoc starts a part: it writes the standalone XML declaration and leaves
// the writer ready for the root element.
func NewDoc(out io.Writer) *Doc {
	d := NewFragment(out)
	d.XmlStandaloneDecl()
	return d
}

// NewFragment returns a writer for markup that is spliced into another
// part later, so no declaration is written.
func NewFragment(out io.Writer) *Doc {
	s := &sink{w: out}
	return &Doc{
		Writer: xml.NewWriter(s, xml.WriterConfig{Indent: xml.IndentNone}),
		sink:   s,
	}
}

// Written reports the number of bytes accepted by the output so far.
func (d *Doc) Written() int64 {
	return d.sink.n
}

// Err returns the first output error, if any.
func (d *Doc) Err() error {
	return d.sink.err
}

// Close reports the first output error wrapped as ErrOutput.
func (d *Doc) Close(part string) error {
	if d.sink.err != nil {
		return ErrOutput.Wrap(d.sink.err, part)
	}
	return nil
}

// Val writes the ubiquitous <name val="v"/> element.
func (d *Doc) Val(name xml.NameString, v string) *Doc {
	d.OTag(name).Attr("val", v).CTag()
	return d
}

// IntVal writes <name val="n"/>.
func (d *Doc) IntVal(name xml.NameString, n int) *Doc {
	d.OTag(name).Attr("val", n).CTag()
	return d
}

// Text writes <name>s</name> with s escaped as element content.
func (d *Doc) Text(name xml.NameString, s string) *Doc {
	d.OTag(name).String(s).CTag()
	return d
}

// Copy splices the bytes of r into the content of the current element.
// The bytes must already be well-formed markup.
func (d *Doc) Copy(r io.Reader) error {
	d.BeginContent()
	if _, err := io.Copy(d.sink, r); err != nil {
		return ErrOutput.Wrap(err, "copied markup")
	}
	return nil
}
