// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package erg is the public facade over the binary-data-file +
// info-sidecar archive pair (spec.md §6). It wires together infofile,
// schema, ergmap, and extract into the small operation set callers
// actually need: Open, list/describe a signal, extract a signal, Close.
//
// Grounded on encoding/pam/pam.go's facade-level path helpers and
// encoding/pam/pamreader.go's reader lifecycle (open index, validate,
// serve reads, close).
package erg

import (
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/vlog"

	"github.com/yeonsoo-p/liberg/ergmap"
	"github.com/yeonsoo-p/liberg/ergpb"
	"github.com/yeonsoo-p/liberg/extract"
	"github.com/yeonsoo-p/liberg/infofile"
	"github.com/yeonsoo-p/liberg/schema"
	"github.com/yeonsoo-p/liberg/workerpool"
)

// readSidecar opens path via grailbio/base/file (the same path-resolution
// abstraction fastq.newFileHandle uses) and reads it fully, the way
// pamreader.go's ReadShardIndex does for its index file.
func readSidecar(path string) ([]byte, error) {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer in.Close(ctx) // nolint: errcheck
	return ioutil.ReadAll(in.Reader(ctx))
}

// Archive is an opened binary-data/info-sidecar pair: a parsed, bound
// schema plus a mapped data region, ready to serve GetSignal calls.
type Archive struct {
	path      string
	infoPath  string
	layout    *schema.RowLayout
	table     *infofile.Table
	mapping   *ergmap.Mapping
	sampleCnt int

	// WorkerPool, when non-nil, is used to partition extraction across
	// goroutines for calls above extract.MinSamplesPerThread. It is nil
	// by default, meaning every GetSignal/GetSignalAsDouble call runs
	// serially. Share one Pool across many Archives (or many calls on
	// one Archive) with SetWorkerPool instead of letting each call spin
	// its own up, mirroring bamprovider's shared-pool-across-shards
	// pattern.
	WorkerPool *workerpool.Pool
}

// infoSidecarPath replaces path's extension with ".info", the
// convention the original tooling uses for the metadata sidecar.
func infoSidecarPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".info"
}

// Open opens the binary data file at path and its ".info" sidecar
// (derived by replacing path's extension), parses and binds the
// sidecar's schema, and memory-maps the data file. Use
// OpenWithInfoPath when the sidecar doesn't follow the ".info"
// convention.
func Open(path string) (*Archive, error) {
	return OpenWithInfoPath(path, infoSidecarPath(path))
}

// OpenWithInfoPath is Open with an explicit sidecar path instead of the
// derived ".info" convention.
func OpenWithInfoPath(path, infoPath string) (*Archive, error) {
	infoBytes, err := readSidecar(infoPath)
	if err != nil {
		return nil, errors.E(err, "erg: reading sidecar", infoPath)
	}

	table, stats := infofile.Parse(infoBytes)
	vlog.VI(1).Infof("erg: parsed sidecar %v: %+v", infoPath, stats)

	layout := schema.Bind(table)

	mapping, err := ergmap.Open(path)
	if err != nil {
		return nil, errors.E(err, "erg: mapping data file", path)
	}

	count, exact := mapping.SampleCount(layout.RowSize)
	if !exact {
		vlog.Errorf("erg: data region of %v (%d bytes) is not a multiple of row size %d", path, len(mapping.Region), layout.RowSize)
	}

	return &Archive{
		path:      path,
		infoPath:  infoPath,
		layout:    layout,
		table:     table,
		mapping:   mapping,
		sampleCnt: count,
	}, nil
}

// OpenCompressed is Open for archives whose sidecar is gzip-compressed
// (".info.gz"), as some producers emit for very large sidecars. The
// binary data file itself is never compressed and is mapped as usual.
func OpenCompressed(path string) (*Archive, error) {
	return OpenCompressedWithInfoPath(path, infoSidecarPath(path)+".gz")
}

// SetWorkerPool installs pool as the shared worker pool used by every
// subsequent GetSignal/GetSignalAsDouble call on this Archive. Passing
// nil reverts to serial extraction.
func (a *Archive) SetWorkerPool(pool *workerpool.Pool) {
	a.WorkerPool = pool
}

// SampleCount returns the number of complete rows in the archive's data
// region, i.e. floor(len(data) / RowSize).
func (a *Archive) SampleCount() int { return a.sampleCnt }

// SchemaFingerprint returns the archive's bound row layout's structural
// fingerprint (schema.RowLayout.Fingerprint), useful for callers caching
// derived state keyed by schema identity.
func (a *Archive) SchemaFingerprint() uint64 { return a.layout.Fingerprint() }

// SchemaProto returns the archive's bound row layout as a wire-ready
// ergpb.RowLayout, for callers that want to ship the resolved schema
// across a process boundary instead of re-parsing the sidecar text.
func (a *Archive) SchemaProto() *ergpb.RowLayout {
	return ergpb.FromSchema(a.layout)
}

// MarshalSchema is SchemaProto().Marshal(), the protobuf-encoded bytes
// of the archive's bound row layout.
func (a *Archive) MarshalSchema() ([]byte, error) {
	return a.SchemaProto().Marshal()
}

// SignalInfo resolves name to its bound Signal without extracting any
// data.
func (a *Archive) SignalInfo(name string) (schema.Signal, bool) {
	return extract.ColumnInfo(a.layout, name)
}

// Signals returns the bound schema's signals in declaration order.
func (a *Archive) Signals() []schema.Signal {
	return a.layout.Signals
}

// GetSignal extracts and scales the named signal into a freshly
// allocated Column. See extract.GetSignal for the full contract.
func (a *Archive) GetSignal(name string) (extract.Column, bool) {
	return extract.GetSignal(a.layout, a.mapping.Region, a.sampleCnt, name, a.WorkerPool)
}

// GetSignalAsDouble is GetSignal widened to float64, with scaling
// applied in floating point (no truncating cast). See
// extract.GetSignalAsDouble for the full contract.
func (a *Archive) GetSignalAsDouble(name string) ([]float64, bool) {
	return extract.GetSignalAsDouble(a.layout, a.mapping.Region, a.sampleCnt, name, a.WorkerPool)
}

// Close unmaps the archive's data file. The Archive and any Columns
// previously returned by GetSignal must not be used afterward.
func (a *Archive) Close() error {
	if a.mapping == nil {
		return nil
	}
	err := a.mapping.Close()
	a.mapping = nil
	if err != nil {
		return errors.E(err, "erg: closing", a.path)
	}
	return nil
}
