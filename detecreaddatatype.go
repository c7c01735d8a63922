package snpqc

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZlib
	DataTypeCompress
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:     {0x1f, 0x8b, 0x08},
	DataTypeZip:      {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:       {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeCompress: {0x1f, 0x9d},
	DataTypeBZip2:    {0x42, 0x5a, 0x68},
}

// DetectDataType matches the leading bytes of a stream against a set of known
// compression signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(header []byte) DataType {
	for dt, sig := range byteCodeSigs {
		if bytes.HasPrefix(header, sig) {
			return dt
		}
	}

	if isZlibHeader(header) {
		return DataTypeZlib
	}

	return DataTypeNoCompression
}

// isZlibHeader checks for a zlib header with a 32K deflate window, which is
// what encoders write in practice, no preset dictionary, and a valid header
// checksum (RFC 1950). That leaves 78 01, 78 5e, 78 9c and 78 da.
func isZlibHeader(header []byte) bool {
	if len(header) < 2 {
		return false
	}

	cmf, flg := header[0], header[1]
	return cmf == 0x78 && flg&0x20 == 0 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}

// MaybeDecompress wraps rc with a decompressor if its content starts with a
// known compression signature. Closing the result closes rc. Zip archives are
// read from their first entry only.
func MaybeDecompress(rc io.ReadCloser) (io.ReadCloser, error) {
	buffered := bufio.NewReader(rc)

	// A short read means a short file, which cannot be compressed anyway.
	header, err := buffered.Peek(6)
	if err != nil && err != io.EOF {
		return nil, pfx.Err(err)
	}

	var r io.Reader
	err = nil
	switch DetectDataType(header) {
	case DataTypeGzip:
		r, err = gzip.NewReader(buffered)
	case DataTypeZip:
		zr := zipstream.NewReader(buffered)
		_, err = zr.Next()
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(buffered)
	case DataTypeXZ:
		r, err = xz.NewReader(buffered, 0)
	case DataTypeZlib:
		r, err = zlib.NewReader(buffered)
	case DataTypeCompress:
		// compress/lzw does not read the Unix compress format
		err = fmt.Errorf("unix compress (.Z) data is not supported")
	default:
		// No data type detected. For now, we assume this is uncompressed.
		r = buffered
	}
	if err != nil {
		return nil, pfx.Err(err)
	}

	return &readCloser{Reader: r, closer: rc}, nil
}

// readCloser closes the underlying stream, whatever decompressor reads from it.
type readCloser struct {
	io.Reader
	closer io.Closer
}

func (c *readCloser) Close() error {
	if closer, ok := c.Reader.(io.Closer); ok {
		closer.Close()
	}

	return c.closer.Close()
}
