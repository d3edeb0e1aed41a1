// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package ergmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, contents []byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.erg")
	require.NoError(t, os.WriteFile(path, contents, 0o644))
	return path
}

func TestOpenExposesDataRegionAfterHeader(t *testing.T) {
	header := make([]byte, HeaderSize)
	body := []byte("abcdefgh")
	path := writeTempFile(t, append(header, body...))

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()
	assert.Equal(t, body, m.Region)
}

func TestSampleCountFloorsAndReportsExactness(t *testing.T) {
	header := make([]byte, HeaderSize)
	body := make([]byte, 25) // 2 rows of 12 bytes + 1 trailing byte
	path := writeTempFile(t, append(header, body...))

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	count, exact := m.SampleCount(12)
	assert.Equal(t, 2, count)
	assert.False(t, exact)
}

func TestFileSizeEqualToHeaderYieldsZeroSamples(t *testing.T) {
	path := writeTempFile(t, make([]byte, HeaderSize))
	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()
	assert.Empty(t, m.Region)
	count, exact := m.SampleCount(12)
	assert.Equal(t, 0, count)
	assert.True(t, exact)
}
