// Package ioinput reads synteny and TE annotation tables. Both can be plain
// text or gzip compressed.
package ioinput

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var res error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && res == nil {
			res = err
		}
	}
	return res
}

// Open returns a reader of the file content. Gzip compressed files are
// recognized by their magic bytes and decompressed on the fly.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, OpenError(path, err)
	}

	br := bufio.NewReader(f)
	magic, _ := br.Peek(len(gzipMagic))
	if len(magic) < len(gzipMagic) ||
		magic[0] != gzipMagic[0] || magic[1] != gzipMagic[1] {
		return &readCloser{Reader: br, closers: []io.Closer{f}}, nil
	}

	gz, err := gzip.NewReader(br)
	if err != nil {
		f.Close()
		return nil, OpenError(path, err)
	}
	return &readCloser{Reader: gz, closers: []io.Closer{gz, f}}, nil
}
