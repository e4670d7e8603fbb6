package xl

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/adnsv/go-xlw/coord"
	"github.com/adnsv/go-xlw/ooxml"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// rowSink is the row storage strategy of a worksheet.
type rowSink interface {
	// row returns row n, creating it when needed.
	row(n int) (*Row, error)
	// find returns row n if it is still held in memory.
	find(n int) *Row
	// accepts reports whether row n can still be written.
	accepts(n int) bool
	// writeData writes the content of <sheetData>.
	writeData(x *ooxml.Doc) error
	// streaming reports whether rows are written out as they complete.
	streaming() bool
	close() error
}

// memoryRows keeps every row until assembly.
type memoryRows struct {
	ws   *Worksheet
	rows sortedMap[int, *Row]
}

func (m *memoryRows) row(n int) (*Row, error) {
	if r, ok := m.rows.Get(n); ok {
		return r, nil
	}
	r := newRow(n)
	m.rows.Set(n, r)
	return r, nil
}

func (m *memoryRows) find(n int) *Row {
	r, _ := m.rows.Get(n)
	return r
}

func (m *memoryRows) accepts(int) bool { return true }
func (m *memoryRows) streaming() bool  { return false }
func (m *memoryRows) close() error     { return nil }

func (m *memoryRows) writeData(x *ooxml.Doc) error {
	block := -1
	spans := ""
	for n, r := range m.rows.All() {
		if r.Len() == 0 {
			if !r.changed {
				continue
			}
			s := ""
			if m.ws.defaultRowSet {
				s = "1:1"
			}
			m.ws.writeRowStart(x, r, s)
			x.CTag()
			continue
		}
		if n/16 > block {
			block = n / 16
			spans = m.spans(n)
		}
		m.ws.writeRow(x, r, spans)
	}
	return nil
}

// spans returns the column span of the 16 row block that starts with
// row from. Excel computes it once per block.
func (m *memoryRows) spans(from int) string {
	block := from / 16
	lo, hi := coord.ColMax, -1
	for n, r := range m.rows.From(from) {
		if n/16 != block {
			break
		}
		if first, last, ok := r.colRange(); ok {
			lo = min(lo, first)
			hi = max(hi, last)
		}
	}
	return fmt.Sprintf("%d:%d", lo+1, hi+1)
}

// streamRows holds only the current row. Completed rows are serialized
// to a temp file, or to memory, and spliced into <sheetData> at assembly.
type streamRows struct {
	ws   *Worksheet
	cur  *Row
	file *os.File
	buf  *bufio.Writer
	mem  *bytes.Buffer
	out  io.Writer
	size int64
}

func newStreamRows(ws *Worksheet, tmpDir string, inMemory bool) (*streamRows, error) {
	s := &streamRows{ws: ws}
	if inMemory {
		s.mem = &bytes.Buffer{}
		s.out = s.mem
		return s, nil
	}
	f, err := os.CreateTemp(tmpDir, "xlw-rows-*.xml")
	if err != nil {
		return nil, ooxml.ErrOutput.Wrap(err, "row stream")
	}
	s.file = f
	s.buf = bufio.NewWriterSize(f, humanize.MiByte)
	s.out = s.buf
	return s, nil
}

func (s *streamRows) row(n int) (*Row, error) {
	if s.cur != nil {
		if n < s.cur.Number {
			return nil, ooxml.ErrIndexOutOfRange.New(fmt.Sprintf("row %d was already written", n+1))
		}
		if n == s.cur.Number {
			return s.cur, nil
		}
		if err := s.flush(); err != nil {
			return nil, err
		}
	}
	s.cur = newRow(n)
	return s.cur, nil
}

func (s *streamRows) find(n int) *Row {
	if s.cur != nil && s.cur.Number == n {
		return s.cur
	}
	return nil
}

func (s *streamRows) accepts(n int) bool {
	return s.cur == nil || n >= s.cur.Number
}

func (s *streamRows) streaming() bool { return true }

// flush serializes the current row and drops it.
func (s *streamRows) flush() error {
	r := s.cur
	if r == nil {
		return nil
	}
	s.cur = nil
	if r.Len() == 0 && !r.changed {
		return nil
	}
	x := ooxml.NewFragment(s.out)
	if r.Len() == 0 {
		sp := ""
		if s.ws.defaultRowSet {
			sp = "1:1"
		}
		s.ws.writeRowStart(x, r, sp)
		x.CTag()
	} else {
		s.ws.writeRow(x, r, "")
	}
	if err := x.Close("row stream"); err != nil {
		return err
	}
	s.size += x.Written()
	if s.ws.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		s.ws.log.WithField("row", r.Number+1).Debugf("flushed row, stream is %s", humanize.Bytes(uint64(s.size)))
	}
	return nil
}

// writeData flushes the pending row and copies the stream. The stream is
// left in place so a later assembly sees the same rows.
func (s *streamRows) writeData(x *ooxml.Doc) error {
	if err := s.flush(); err != nil {
		return err
	}
	if s.size == 0 {
		return nil
	}
	if s.mem != nil {
		return x.Copy(bytes.NewReader(s.mem.Bytes()))
	}
	if s.file == nil {
		return ooxml.ErrOutput.New("row stream is closed")
	}
	if err := s.buf.Flush(); err != nil {
		return ooxml.ErrOutput.Wrap(err, "row stream")
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return ooxml.ErrOutput.Wrap(err, "row stream")
	}
	if err := x.Copy(s.file); err != nil {
		return err
	}
	if _, err := s.file.Seek(0, io.SeekEnd); err != nil {
		return ooxml.ErrOutput.Wrap(err, "row stream")
	}
	return nil
}

func (s *streamRows) close() error {
	if s.file == nil {
		return nil
	}
	name := s.file.Name()
	err := s.file.Close()
	s.file = nil
	if rerr := os.Remove(name); err == nil {
		err = rerr
	}
	if err != nil {
		return ooxml.ErrOutput.Wrap(err, "row stream")
	}
	return nil
}
