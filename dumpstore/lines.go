package dumpstore

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/langclust/resource"
)

// maxLineBytes bounds a single record line. Posting lines are tiny; hitting
// this means the input is not a posting dump.
const maxLineBytes = 1 << 20

// ReadLines reads a whole dump as newline-delimited records, decompressing
// by extension and charging reads against the controller's IO limit. Blank
// lines are skipped.
func ReadLines(ctx context.Context, s Store, name string, ctrl *resource.Controller) ([]string, error) {
	dump, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer dump.Close()

	var r io.Reader = resource.NewRateLimitedReader(ctx, dump, ctrl)

	dec, err := NewDecoder(name, r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	defer dec.Close()

	var lines []string

	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return lines, nil
}
