// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package infofile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripSidecar(t *testing.T) {
	table, stats := Parse([]byte("A = 1\nB:\n\tx\n\ty\nC = 2\n"))
	require.Equal(t, 3, table.Len())
	assert.Equal(t, "A", string(table.At(0).Key))
	assert.Equal(t, "1", string(table.At(0).Value))
	assert.Equal(t, "B", string(table.At(1).Key))
	assert.Equal(t, "x\ny", string(table.At(1).Value))
	assert.Equal(t, "C", string(table.At(2).Key))
	assert.Equal(t, "2", string(table.At(2).Value))
	assert.Equal(t, 3, stats.NumEntries)
	assert.Equal(t, 2, stats.NumContinuationLines)
}

func TestCommentHandling(t *testing.T) {
	table, _ := Parse([]byte("# header\nK = v\n  # not a comment because indented line is skipped only inside multiline\n"))
	require.Equal(t, 1, table.Len())
	v, ok := table.LookupString("K")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSeparatorPrecedence(t *testing.T) {
	table, _ := Parse([]byte("Path = /tmp:/var = old\n"))
	v, ok := table.LookupString("Path")
	require.True(t, ok)
	assert.Equal(t, "/tmp:/var = old", v)
}

func TestEmptySidecar(t *testing.T) {
	table, _ := Parse(nil)
	assert.Equal(t, 0, table.Len())
	_, ok := table.LookupString("anything")
	assert.False(t, ok)
}

func TestSingleEntryNoTrailingNewline(t *testing.T) {
	table, _ := Parse([]byte("K = v"))
	require.Equal(t, 1, table.Len())
	v, ok := table.LookupString("K")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestValuesContainingSeparatorsPreservedVerbatim(t *testing.T) {
	table, _ := Parse([]byte("X:\n\ta=b:c=d\n"))
	v, ok := table.LookupString("X")
	require.True(t, ok)
	assert.Equal(t, "a=b:c=d", v)
}

func TestUTF8PreservedByteForByte(t *testing.T) {
	table, _ := Parse([]byte("Name = \xe3\x81\x82\xe3\x81\x84\n"))
	v, ok := table.LookupString("Name")
	require.True(t, ok)
	assert.Equal(t, "\xe3\x81\x82\xe3\x81\x84", v)
}

func TestDuplicateKeysReturnFirstInsertion(t *testing.T) {
	table, _ := Parse([]byte("K = first\nK = second\n"))
	v, ok := table.LookupString("K")
	require.True(t, ok)
	assert.Equal(t, "first", v)
	assert.Equal(t, 2, table.Len())
}

func TestMultilineSeedTailPrependsLikeAContinuation(t *testing.T) {
	table, _ := Parse([]byte("K: seed\n\tcont1\n\tcont2\n"))
	v, ok := table.LookupString("K")
	require.True(t, ok)
	assert.Equal(t, "seed\ncont1\ncont2", v)
}

func TestMultilineCommittedAtEOFWithoutTrailingLine(t *testing.T) {
	table, _ := Parse([]byte("K:\n\tonly"))
	v, ok := table.LookupString("K")
	require.True(t, ok)
	assert.Equal(t, "only", v)
}

func TestMalformedLinesSilentlySkipped(t *testing.T) {
	table, stats := Parse([]byte("not a valid line\nK = v\n"))
	require.Equal(t, 1, table.Len())
	assert.Equal(t, 1, stats.NumSkippedLines)
}

func TestEntryOrderingMatchesObservationOrder(t *testing.T) {
	table, _ := Parse([]byte("A = 1\nB = 2\nC = 3\n"))
	var keys []string
	for i := 0; i < table.Len(); i++ {
		keys = append(keys, string(table.At(i).Key))
	}
	assert.Equal(t, []string{"A", "B", "C"}, keys)
}

func TestChecksumStableForIdenticalInput(t *testing.T) {
	buf := []byte("A = 1\nB = 2\n")
	assert.Equal(t, Checksum(buf), Checksum(append([]byte(nil), buf...)))
}
