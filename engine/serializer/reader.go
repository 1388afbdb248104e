package serializer

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Counts above this are treated as corruption.
const maxElementCount = 1 << 26

// Element arrays are read this many at a time so a corrupt count cannot
// allocate more than the stream actually holds.
const readChunkSize = 4096

type assetReader struct {
	r   *bufio.Reader
	err error
}

func newAssetReader(r io.Reader) *assetReader {
	return &assetReader{r: bufio.NewReader(r)}
}

func (ar *assetReader) read(data interface{}) {
	if ar.err != nil {
		return
	}
	ar.err = binary.Read(ar.r, binary.LittleEndian, data)
}

func (ar *assetReader) readUint32() uint32 {
	var v uint32
	ar.read(&v)
	return v
}

// readCount reads a u32 element count and rejects implausible values.
func (ar *assetReader) readCount(what string) int {
	n := ar.readUint32()
	if ar.err == nil && n > maxElementCount {
		ar.err = fmt.Errorf("%s count %d exceeds limit", what, n)
		return 0
	}
	return int(n)
}

func (ar *assetReader) readString() string {
	n := ar.readCount("string length")
	if ar.err != nil || n == 0 {
		return ""
	}
	return string(readElements[byte](ar, n))
}

// readElements reads n fixed-size values, growing the result chunk by chunk.
func readElements[T any](ar *assetReader, n int) []T {
	if ar.err != nil || n == 0 {
		return nil
	}
	out := make([]T, 0, min(n, readChunkSize))
	for len(out) < n && ar.err == nil {
		chunk := make([]T, min(n-len(out), readChunkSize))
		ar.read(chunk)
		if ar.err != nil {
			if ar.err == io.EOF {
				ar.err = io.ErrUnexpectedEOF
			}
			return nil
		}
		out = append(out, chunk...)
	}
	return out
}
