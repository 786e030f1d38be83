package bytestore

import "io"

// Cursor is a rolling read/write position into a Store, corresponding to
// spec.md §3's "(chunk, pos0, pos)" read cursor. A Cursor is cheap to
// create; several may coexist over one Store as long as only one mutates it
// at a time (spec.md §5).
type Cursor struct {
	s        *Store
	chunk    int // index of the chunk containing pos
	off      int // offset of pos within that chunk
	pos      int64
	appendMu bool // last Map call exposed spare capacity; next Advance must extend size
}

// NewCursor returns a Cursor positioned at the start of s.
func NewCursor(s *Store) *Cursor {
	return &Cursor{s: s}
}

// Pos reports the cursor's absolute logical position.
func (c *Cursor) Pos() int64 { return c.pos }

func (c *Cursor) relocate() {
	c.chunk, c.off = c.s.locate(c.pos)
}

// Read copies into p starting at the cursor, advancing it, and returns
// io.EOF once the store is exhausted, matching io.Reader.
func (c *Cursor) Read(p []byte) (int, error) {
	if c.pos >= c.s.size {
		return 0, io.EOF
	}
	c.relocate()
	total := 0
	for total < len(p) && c.pos < c.s.size {
		if c.chunk >= len(c.s.chunks) {
			break
		}
		ch := c.s.chunks[c.chunk]
		if c.off >= len(ch) {
			c.chunk++
			c.off = 0
			continue
		}
		n := copy(p[total:], ch[c.off:])
		total += n
		c.off += n
		c.pos += int64(n)
	}
	if total == 0 {
		return 0, io.EOF
	}
	return total, nil
}

// Write copies p into the store starting at the cursor, overwriting
// existing bytes and appending (growing the store) past the current size.
// Returns ErrReadOnly on a read-only Store.
func (c *Cursor) Write(p []byte) (int, error) {
	if c.s.readOnly {
		return 0, ErrReadOnly
	}
	total := 0

	// Phase 1: overwrite bytes already within the store's size.
	if c.pos < c.s.size {
		c.relocate()
		for total < len(p) && c.pos < c.s.size {
			ch := c.s.chunks[c.chunk]
			if c.off >= len(ch) {
				c.chunk++
				c.off = 0
				continue
			}
			n := copy(ch[c.off:], p[total:])
			total += n
			c.off += n
			c.pos += int64(n)
		}
	}

	// Phase 2: append the remainder, growing the store.
	for total < len(p) {
		room := c.s.headRoom()
		if room == 0 {
			nc := make([]byte, 0, c.s.nextChunkCap(len(p)-total))
			c.s.chunks = append(c.s.chunks, nc)
			room = cap(nc)
		}
		lastIdx := len(c.s.chunks) - 1
		last := c.s.chunks[lastIdx]
		take := room
		if rem := len(p) - total; take > rem {
			take = rem
		}
		c.s.chunks[lastIdx] = append(last, p[total:total+take]...)
		total += take
		c.s.size += int64(take)
		c.pos += int64(take)
		c.chunk, c.off = lastIdx, len(c.s.chunks[lastIdx])
	}
	return total, nil
}

// whence values mirror io.Seeker.
const (
	SeekStart   = io.SeekStart
	SeekCurrent = io.SeekCurrent
	SeekEnd     = io.SeekEnd
)

// Seek repositions the cursor. Seeking past the end of a read-only store
// clamps to the end; on a writable store it extends the store, zero-filling
// the gap, per spec.md §6/§8.
func (c *Cursor) Seek(off int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case SeekStart:
		target = off
	case SeekCurrent:
		target = c.pos + off
	case SeekEnd:
		target = c.s.size + off
	default:
		return 0, ErrInvalidWhence
	}
	if target < 0 {
		return 0, ErrNegativePosition
	}
	if target > c.s.size {
		if c.s.readOnly {
			target = c.s.size
		} else {
			c.s.growBy(int(target - c.s.size))
		}
	}
	c.pos = target
	c.relocate()
	return c.pos, nil
}

// Map returns a contiguous span directly inside the store's current chunk,
// avoiding a copy; the caller must follow with Advance(n), n <= len(span).
// On the read side the span is the chunk's already-written tail. On the
// write side (write=true) the span is the chunk's spare capacity beyond its
// current logical length — Go's three-index-free slice expression
// ch[len(ch):cap(ch)] exposes exactly that backing-array tail without
// touching the store's logical size, which Advance updates once the caller
// has actually filled in bytes. A nil, nil return means the read side is
// exhausted; on the write side a full last chunk is followed by a freshly
// allocated one (sized for at least one byte when hint <= 0).
func (c *Cursor) Map(hint int, write bool) ([]byte, error) {
	if write {
		if c.s.readOnly {
			return nil, ErrReadOnly
		}
		if c.pos < c.s.size {
			// Mapping into already-written bytes: the mutable span is
			// whatever remains of the current chunk's content.
			c.relocate()
			for c.chunk+1 < len(c.s.chunks) && c.off >= len(c.s.chunks[c.chunk]) {
				c.chunk++
				c.off = 0
			}
			ch := c.s.chunks[c.chunk]
			if c.off >= len(ch) {
				return nil, nil
			}
			return ch[c.off:len(ch):len(ch)], nil
		}
		// Mapping past the end: expose spare capacity, growing the chunk
		// list first if the last chunk is full.
		if c.s.headRoom() == 0 {
			want := hint
			if want <= 0 {
				want = 1
			}
			c.s.chunks = append(c.s.chunks, make([]byte, 0, c.s.nextChunkCap(want)))
		}
		c.chunk = len(c.s.chunks) - 1
		ch := c.s.chunks[c.chunk]
		c.off = len(ch)
		c.appendMu = true
		return ch[len(ch):cap(ch)], nil
	}

	if c.pos >= c.s.size {
		return nil, nil
	}
	c.relocate()
	// locate reports a position on a chunk boundary as the end of the
	// earlier chunk; step over to the chunk that holds the next byte.
	for c.chunk+1 < len(c.s.chunks) && c.off >= len(c.s.chunks[c.chunk]) {
		c.chunk++
		c.off = 0
	}
	if c.chunk >= len(c.s.chunks) {
		return nil, nil
	}
	ch := c.s.chunks[c.chunk]
	if c.off >= len(ch) {
		return nil, nil
	}
	return ch[c.off:len(ch):len(ch)], nil
}

// Advance moves the cursor forward n bytes after a Map call. On the write
// side this is what actually extends the chunk's logical length and the
// store's size; n must not exceed the length of the span Map returned.
func (c *Cursor) Advance(n int) {
	if n == 0 {
		c.appendMu = false
		return
	}
	if c.appendMu {
		c.s.chunks[c.chunk] = c.s.chunks[c.chunk][:c.off+n]
		c.s.size += int64(n)
		c.appendMu = false
	}
	c.off += n
	c.pos += int64(n)
}
