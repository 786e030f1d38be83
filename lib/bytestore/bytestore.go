// Package bytestore implements the chunked, append-only byte-sequence store
// from spec.md §3/§4.2: a growable list of fixed-capacity chunks with a
// rolling read/write cursor, and an in-place "map a contiguous span, then
// advance" path that lets a device read or write without an intermediate
// copy.
//
// The C original backs this with a singly-linked ring of chunks; here a
// slice of chunks stands in for the linked list (see DESIGN.md) while
// preserving the documented invariant: every chunk before the last is full,
// and only the last chunk may be partially filled.
package bytestore

import "errors"

const (
	minChunkSize = 256
	maxChunkSize = 512
)

// ErrReadOnly is returned by Write/Map(write=true)/Truncate on a read-only
// Store, per spec.md §4.2.
var ErrReadOnly = errors.New("bytestore: store is read-only")

// Store is a chunked append-only byte list. Not safe for concurrent use.
type Store struct {
	chunks   [][]byte
	size     int64
	readOnly bool
}

// New creates an empty, writable Store.
func New() *Store {
	return &Store{}
}

// NewReadOnly wraps an existing byte slice as a single-chunk, read-only
// Store (used when a ByteSeqDevice views externally-owned data).
func NewReadOnly(data []byte) *Store {
	s := &Store{readOnly: true}
	if len(data) > 0 {
		s.chunks = [][]byte{data}
		s.size = int64(len(data))
	}
	return s
}

// Len returns the total number of bytes logically stored.
func (s *Store) Len() int64 { return s.size }

// nextChunkCap implements the doubling growth policy used throughout this
// codebase's buffers (see bitbuffer.Codec.grow in the teacher): capacity is
// double the last chunk's, at least minChunkSize and at most maxChunkSize,
// and is then cut down to the request when the request is smaller.
func (s *Store) nextChunkCap(need int) int {
	cap := minChunkSize
	if n := len(s.chunks); n > 0 {
		if c := cap2(s.chunks[n-1]); c*2 > cap {
			cap = c * 2
		}
	}
	if cap > maxChunkSize {
		cap = maxChunkSize
	}
	if need > 0 && need < cap {
		cap = need
	}
	return cap
}

func cap2(b []byte) int { return cap(b) }

// headRoom reports how many more bytes fit in the last chunk before it is
// full.
func (s *Store) headRoom() int {
	if len(s.chunks) == 0 {
		return 0
	}
	last := s.chunks[len(s.chunks)-1]
	return cap(last) - len(last)
}

// growBy appends n logical bytes (zero-filled) to the store, allocating new
// chunks as needed. It only extends the size and returns nothing; callers
// fill bytes themselves through Cursor.
func (s *Store) growBy(n int) {
	for n > 0 {
		room := s.headRoom()
		if room == 0 {
			nc := make([]byte, 0, s.nextChunkCap(n))
			s.chunks = append(s.chunks, nc)
			room = cap(nc)
		}
		take := room
		if take > n {
			take = n
		}
		last := len(s.chunks) - 1
		old := len(s.chunks[last])
		s.chunks[last] = s.chunks[last][:old+take]
		clear(s.chunks[last][old:]) // spare capacity may hold bytes left by Truncate
		n -= take
		s.size += int64(take)
	}
}

// Truncate caps the logical size at n, discarding chunks and content beyond
// it; the chunk that now ends the store keeps its capacity (spec.md §4.5's
// truncate(n) contract, generalized from ostringbuf to any Store).
func (s *Store) Truncate(n int64) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if n >= s.size {
		return nil
	}
	if n < 0 {
		n = 0
	}
	idx, off := s.locate(n)
	if idx < len(s.chunks) {
		s.chunks[idx] = s.chunks[idx][:off]
		s.chunks = s.chunks[:idx+1]
	}
	s.size = n
	return nil
}

// Bytes materializes the full logical content as one contiguous slice. It
// is a convenience for tests and small stores; callers streaming large
// stores should use Cursor.Read instead.
func (s *Store) Bytes() []byte {
	out := make([]byte, 0, s.size)
	for _, c := range s.chunks {
		out = append(out, c...)
	}
	return out
}

// locate returns the chunk index and intra-chunk offset for an absolute
// byte position pos, which must satisfy 0 <= pos <= s.size.
func (s *Store) locate(pos int64) (chunkIdx, off int) {
	for i, c := range s.chunks {
		if pos <= int64(len(c)) {
			return i, int(pos)
		}
		pos -= int64(len(c))
	}
	return len(s.chunks), 0
}
