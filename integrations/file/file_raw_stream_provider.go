// Package file streams lines out of files and readers.
package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/shpandrak/shpansample/stream"
)

// MaxLineSize is the longest line the line streams accept, longer lines fail the stream.
const MaxLineSize = 1024 * 1024

// lineStreamProvider reads lines from a file, or from a reader it does not own.
type lineStreamProvider struct {
	filePath              string
	reader                io.Reader
	file                  *os.File
	scanner               *bufio.Scanner
	fileMissingHenceEmpty bool
}

// StreamLinesFromFile creates a lazy stream of the lines of a file, without their line terminators.
// The file is opened when the stream is materialized, a missing file is an empty stream.
func StreamLinesFromFile(filePath string) stream.Stream[string] {
	return stream.NewStream[string](&lineStreamProvider{filePath: filePath})
}

// StreamLinesFromReader creates a lazy stream of the lines read from r, e.g. os.Stdin.
// r is not closed, and since readers can't rewind, the stream can only be materialized once.
func StreamLinesFromReader(r io.Reader) stream.Stream[string] {
	return stream.NewStream[string](&lineStreamProvider{reader: r})
}

func (fsp *lineStreamProvider) Open(_ context.Context) error {
	fsp.fileMissingHenceEmpty = false
	r := fsp.reader
	if r == nil {
		file, err := os.Open(fsp.filePath)
		if err != nil {
			// If no file, that's fine, it means stream is empty
			if errors.Is(err, os.ErrNotExist) {
				fsp.fileMissingHenceEmpty = true
				return nil
			}
			return errors.Wrapf(err, "failed opening line stream file %s", fsp.filePath)
		}
		fsp.file = file
		r = file
	}

	fsp.scanner = bufio.NewScanner(r)
	fsp.scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return nil
}

func (fsp *lineStreamProvider) Close() {
	if fsp.file != nil {
		if err := fsp.file.Close(); err != nil {
			slog.Warn(fmt.Sprintf("error closing stream file %s: %v", fsp.filePath, err))
		}
		fsp.file = nil
	}
	fsp.scanner = nil
}

func (fsp *lineStreamProvider) Emit(ctx context.Context) (string, error) {
	if fsp.scanner == nil {
		if fsp.fileMissingHenceEmpty {
			return "", io.EOF
		}
		// Emit is somehow called before Open, or after Close
		return "", os.ErrClosed
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if fsp.scanner.Scan() {
		// Text copies the scanner buffer, lines may be retained by the consumer
		return fsp.scanner.Text(), nil
	}
	if err := fsp.scanner.Err(); err != nil {
		return "", errors.Wrapf(err, "failed reading line stream %s", fsp.name())
	}
	return "", io.EOF
}

func (fsp *lineStreamProvider) name() string {
	if fsp.filePath != "" {
		return fsp.filePath
	}
	return "reader"
}
