package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/order-parser/internal/parser"
)

func decodeAll(t *testing.T, out *bytes.Buffer) []parser.ParseResult {
	t.Helper()
	var results []parser.ParseResult
	dec := json.NewDecoder(out)
	for dec.More() {
		var r parser.ParseResult
		require.NoError(t, dec.Decode(&r))
		results = append(results, r)
	}
	return results
}

func TestRun_Args(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"oka kg tomatolu", "2 kg rice"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	results := decodeAll(t, &stdout)
	require.Len(t, results, 2)
	require.Len(t, results[0].Items, 1)
	assert.Equal(t, "tomato", results[0].Items[0].Name)
	assert.Equal(t, "rice", results[1].Items[0].Name)
}

func TestRun_StdinMerge(t *testing.T) {
	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader("oka kg tomatolu\n\n2 kg rice\n")
	code := run([]string{"-merge"}, stdin, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	results := decodeAll(t, &stdout)
	require.Len(t, results, 1)
	assert.Len(t, results[0].Items, 2)
}

func TestRun_LongStdinLine(t *testing.T) {
	long := strings.Repeat("tomato ", 20000) + "2 kg rice"
	require.Greater(t, len(long), 64*1024)

	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(long+"\n"), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Len(t, decodeAll(t, &stdout), 1)
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-nope"}, strings.NewReader(""), &stdout, &stderr))
	assert.Empty(t, stdout.String())
}
