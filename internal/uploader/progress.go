package uploader

import "io"

// progressReader wraps a reader and reports the cumulative number of bytes
// read through the callback.
type progressReader struct {
	r     io.Reader
	total int64
	fn    func(int64)
}

// NewProgressReader returns a reader reporting cumulative bytes read to fn.
// A nil fn yields the original reader unchanged.
func NewProgressReader(r io.Reader, fn func(int64)) io.Reader {
	if fn == nil {
		return r
	}
	return &progressReader{r: r, fn: fn}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.total += int64(n)
		p.fn(p.total)
	}
	return n, err
}
