// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package erg

import (
	"io/ioutil"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"v.io/x/lib/vlog"

	"github.com/yeonsoo-p/liberg/ergmap"
	"github.com/yeonsoo-p/liberg/infofile"
	"github.com/yeonsoo-p/liberg/schema"
)

// OpenCompressedWithInfoPath is OpenWithInfoPath for a gzip-compressed
// sidecar (infoPath is expected to name the ".gz" file directly).
func OpenCompressedWithInfoPath(path, infoPath string) (*Archive, error) {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, infoPath)
	if err != nil {
		return nil, errors.E(err, "erg: opening compressed sidecar", infoPath)
	}
	defer in.Close(ctx) // nolint: errcheck

	gz, err := gzip.NewReader(in.Reader(ctx))
	if err != nil {
		return nil, errors.E(err, "erg: decompressing sidecar", infoPath)
	}
	defer gz.Close()

	infoBytes, err := ioutil.ReadAll(gz)
	if err != nil {
		return nil, errors.E(err, "erg: reading decompressed sidecar", infoPath)
	}

	table, stats := infofile.Parse(infoBytes)
	vlog.VI(1).Infof("erg: parsed compressed sidecar %v: %+v", infoPath, stats)

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
