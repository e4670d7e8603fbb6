package xl

import (
	"io"
	"sync"

	"github.com/adnsv/go-xlw/ooxml"
	"github.com/adnsv/srw/xml"
)

// StringTable interns cell strings for the shared string part. It returns
// the index of s and the canonical stored copy. Rich strings are stored as
// <r> run markup and kept apart from plain strings with the same text.
type StringTable interface {
	Intern(s string, rich bool) (int, string)
}

type sstKey struct {
	s    string
	rich bool
}

// SharedStrings is the default StringTable. It is append-only and safe
// for concurrent use by sheets built on different goroutines.
type SharedStrings struct {
	mu    sync.Mutex
	index map[sstKey]int
	list  []sstKey
	count int
}

func NewSharedStrings() *SharedStrings {
	return &SharedStrings{index: map[sstKey]int{}}
}

func (t *SharedStrings) Intern(s string, rich bool) (int, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count++
	k := sstKey{s, rich}
	if i, ok := t.index[k]; ok {
		return i, t.list[i].s
	}
	i := len(t.list)
	t.list = append(t.list, k)
	t.index[k] = i
	return i, s
}

// Len returns the number of unique strings.
func (t *SharedStrings) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.list)
}

// Count returns the number of references handed out.
func (t *SharedStrings) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Assemble writes the sst part.
func (t *SharedStrings) Assemble(w io.Writer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	x := ooxml.NewDoc(w)
	x.OTag("sst")
	x.Attr("xmlns", ooxml.NSMain)
	x.Attr("count", t.count)
	x.Attr("uniqueCount", len(t.list))
	for _, k := range t.list {
		x.OTag("si")
		if k.rich {
			x.RawString(xml.RawString(k.s))
		} else {
			writeT(x, k.s)
		}
		x.CTag()
	}
	x.CTag()
	return x.Close("shared strings")
}
