package diag

import (
	"fmt"
	"strings"
)

const dumpBytesPerLine = 16

// Dump formats data as a hex-and-ASCII memory dump, 16 bytes per line
// grouped in fours, the same layout the original dumper produced for a
// raw pointer and size. base is the address printed on each line; callers
// watching a coroutine's image pass the CSA offset they read it from.
func Dump(data []byte, base uint64) string {
	var b strings.Builder
	fmt.Fprint(&b, "\n               0 1 2 3  4 5 6 7  8 9 a b  c d e f  0123 4567 89ab cdef\n\n")

	for off := 0; off < len(data); off += dumpBytesPerLine {
		end := off + dumpBytesPerLine
		if end > len(data) {
			end = len(data)
		}
		line := data[off:end]

		fmt.Fprintf(&b, "%12x  ", base+uint64(off))
		for i := 0; i < dumpBytesPerLine; i++ {
			if i == 4 || i == 8 || i == 12 {
				b.WriteByte(' ')
			}
			if i < len(line) {
				fmt.Fprintf(&b, "%02x", line[i])
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteString("  ")

		for i := 0; i < dumpBytesPerLine; i++ {
			if i == 4 || i == 8 || i == 12 {
				b.WriteByte(' ')
			}
			switch {
			case i >= len(line):
				b.WriteByte(' ')
			case line[i] < 0x20:
				b.WriteByte('.')
			default:
				b.WriteByte(line[i])
			}
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	return b.String()
}
