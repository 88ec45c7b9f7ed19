package demstats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// SkipBytes copies every stride'th byte of r to w, starting at the byte whose
// index i satisfies (i+offset)%stride == 0. It returns the number of bytes
// read and written.
func SkipBytes(r io.Reader, w io.Writer, offset, stride int) (read, written int64, err error) {
	if stride <= 0 {
		return 0, 0, fmt.Errorf("invalid stride %d", stride)
	}
	phase := ((offset % stride) + stride) % stride

	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	for {
		var b byte
		b, err = br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return read, written, err
		}
		if (int(read%int64(stride))+phase)%stride == 0 {
			if err = bw.WriteByte(b); err != nil {
				return read, written, err
			}
			written++
		}
		read++
	}
	return read, written, bw.Flush()
}
