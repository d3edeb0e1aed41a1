// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package infofile

import (
	"fmt"
	"io"
)

// Writer serializes entries back to sidecar text. It is specified at
// interface level only (spec.md §1, §11): round-trip fidelity beyond
// what Parse accepts is not required, and no component in this module
// depends on write-back.
type Writer interface {
	// WriteEntry emits one entry. The minimal implementation below
	// always uses the single-line "Key = Value" form.
	WriteEntry(key, value string) error
	// Flush finishes writing, flushing any buffered output.
	Flush() error
}

type lineWriter struct {
	w   io.Writer
	err error
}

// NewWriter returns a Writer that emits every entry in single-line form,
// one per line. It is not exercised by the extraction path; it exists
// because several example tools want to re-emit a filtered sidecar.
func NewWriter(w io.Writer) Writer {
	return &lineWriter{w: w}
}

func (l *lineWriter) WriteEntry(key, value string) error {
	if l.err != nil {
		return l.err
	}
	_, l.err = fmt.Fprintf(l.w, "%s = %s\n", key, value)
	return l.err
}

func (l *lineWriter) Flush() error {
	return l.err
}
