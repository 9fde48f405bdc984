package service

import (
	"bufio"
	"io"

	perr "taupe/internal/platform/errors"
)

// WriteLines writes each line followed by a newline and flushes
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l); err != nil {
			return perr.Wrap(err, perr.ErrorCodeFile, "write output")
		}
		if err := bw.WriteByte('\n'); err != nil {
			return perr.Wrap(err, perr.ErrorCodeFile, "write output")
		}
	}
	if err := bw.Flush(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeFile, "write output")
	}
	return nil
}
