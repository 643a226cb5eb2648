package main

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// writeSample renders the sample in the requested format.
// In lines format strings are written as is and any other item as a single line of JSON.
func writeSample(w io.Writer, format string, sample []any) error {
	switch format {
	case FormatLines:
		bw := bufio.NewWriter(w)
		for _, item := range sample {
			if err := writeLine(bw, item); err != nil {
				return err
			}
		}
		return bw.Flush()
	case FormatJson:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sample)
	case FormatYaml:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(sample); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.Wrapf(errInvalidFormat, "unsupported format %q", format)
	}
}

func writeLine(bw *bufio.Writer, item any) error {
	if s, ok := item.(string); ok {
		if _, err := bw.WriteString(s); err != nil {
			return err
		}
	} else {
		b, err := json.Marshal(item)
		if err != nil {
			return errors.Wrap(err, "failed encoding sampled item")
		}
		if _, err := bw.Write(b); err != nil {
			return err
		}
	}
	return bw.WriteByte('\n')
}
