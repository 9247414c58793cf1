package main

import (
	"path/filepath"
	"testing"

	"github.com/npillmayer/otfeat/classify"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat")
	defer teardown()
	//
	cmd, err := parseCommand("load:font.ttx  coverage:GPOS:3 bogus quit canon")
	require.NoError(t, err)
	require.Len(t, cmd.ops, 4, "parsing stops at quit")
	assert.Equal(t, Op{code: LOAD, arg: "font.ttx"}, cmd.ops[0])
	assert.Equal(t, Op{code: COVERAGE, arg: "GPOS", format: "3"}, cmd.ops[1])
	assert.Equal(t, HELP, cmd.ops[2].code, "unknown commands ask for help")
	assert.Equal(t, QUIT, cmd.ops[3].code)
	//
	_, err = parseCommand("   ")
	assert.Error(t, err)
}

func TestFormatLookupFlags(t *testing.T) {
	assert.Equal(t, "-", formatLookupFlags(0))
	assert.Equal(t, "IgnoreMarks", formatLookupFlags(0x0008))
	assert.Equal(t, "RightToLeft|UseMarkFilteringSet|MarkAttachType=2", formatLookupFlags(0x0211))
}

func TestExecuteOnSample(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat")
	defer teardown()
	//
	intp := &Intp{conf: classify.DefaultConfig()}
	err, _ := intp.execute(&Command{ops: []Op{{code: CANON}}})
	assert.ErrorIs(t, err, ErrNoFont)
	//
	path := filepath.Join("..", "testdata", "ttx", "sample.ttx")
	cmd, err := parseCommand("load:" + path + " canon lookups:GSUB coverage:GPOS:0 features:new existing marks")
	require.NoError(t, err)
	err, stop := intp.execute(cmd)
	require.NoError(t, err)
	assert.False(t, stop)
	assert.Equal(t, "Sample Regular", intp.font.Name)
	//
	err, stop = intp.execute(&Command{ops: []Op{{code: QUIT}}})
	assert.NoError(t, err)
	assert.True(t, stop)
}
