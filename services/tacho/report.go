package tacho

import (
	"io"

	"motioncode-go/types"
	"motioncode-go/x/fmtx"
)

// The report feed is a line-oriented text stream for the host monitor:
//
//	tacho <port> <rotations> <millidegrees> <motor>
//
// One line per present port per poll. Kept dumb on purpose: it has to be
// parseable from a serial capture with nothing but a line splitter.
func writeReport(w io.Writer, v types.AngleValue) {
	fmtx.Fprintf(w, "tacho %d %d %d %s\n", v.Port, v.Rotations, v.Millidegrees, v.Motor)
}
