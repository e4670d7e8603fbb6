package xl

import (
	"fmt"
	"sync"

	"github.com/adnsv/go-xlw/ooxml"
	"github.com/google/uuid"
)

// mediaRef is one xl/media member.
type mediaRef struct {
	name string // e.g. image1.png
	blob []byte
	info ooxml.ImageInfo
}

func (m *mediaRef) target() string {
	return "../media/" + m.name
}

// mediaRegistry names image blobs and shares identical content between
// all the pictures of a workbook.
type mediaRegistry struct {
	mu     sync.Mutex
	byHash map[uuid.UUID]*mediaRef
	list   []*mediaRef
}

func newMediaRegistry() *mediaRegistry {
	return &mediaRegistry{byHash: map[uuid.UUID]*mediaRef{}}
}

func (mr *mediaRegistry) add(blob []byte, info ooxml.ImageInfo) *mediaRef {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	h := ooxml.BlobHash(blob)
	if m, ok := mr.byHash[h]; ok {
		return m
	}
	m := &mediaRef{
		name: fmt.Sprintf("image%d.%s", len(mr.list)+1, info.Extension()),
		blob: blob,
		info: info,
	}
	mr.byHash[h] = m
	mr.list = append(mr.list, m)
	return m
}

func (mr *mediaRegistry) all() []*mediaRef {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	return append([]*mediaRef(nil), mr.list...)
}

func (w *Worksheet) mediaRegistry() *mediaRegistry {
	if w.media == nil {
		w.media = newMediaRegistry()
	}
	return w.media
}

// Media returns the image members referenced by the sheet, keyed by their
// path in the package.
func (w *Worksheet) Media() map[string][]byte {
	res := map[string][]byte{}
	add := func(m *mediaRef) {
		if m != nil {
			res["xl/media/"+m.name] = m.blob
		}
	}
	for _, o := range w.objects {
		add(o.media)
	}
	add(w.background)
	return res
}
