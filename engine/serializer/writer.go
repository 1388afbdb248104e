package serializer

import (
	"bufio"
	"encoding/binary"
	"io"
)

// assetWriter keeps the first error and ignores every later write.
type assetWriter struct {
	w   *bufio.Writer
	err error
}

func newAssetWriter(w io.Writer) *assetWriter {
	return &assetWriter{w: bufio.NewWriter(w)}
}

func (aw *assetWriter) write(data interface{}) {
	if aw.err != nil {
		return
	}
	aw.err = binary.Write(aw.w, binary.LittleEndian, data)
}

func (aw *assetWriter) writeUint32(v int) {
	aw.write(uint32(v))
}

func (aw *assetWriter) writeString(s string) {
	aw.writeUint32(len(s))
	if aw.err != nil || len(s) == 0 {
		return
	}
	_, aw.err = aw.w.WriteString(s)
}

func (aw *assetWriter) flush() error {
	if aw.err != nil {
		return aw.err
	}
	return aw.w.Flush()
}
