package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/otfeat"
	"github.com/npillmayer/otfeat/otgraph"
	"github.com/pterm/pterm"
)

const orderPageSize = 64

func orderOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	from := 0
	if arg, ok := op.hasArg(); ok {
		if from, err = strconv.Atoi(arg); err != nil || from < 0 {
			return fmt.Errorf("glyph index not numeric: %v", arg), false
		}
	}
	order := intp.font.GlyphOrder
	if from >= len(order) {
		return fmt.Errorf("font has only %d glyphs", len(order)), false
	}
	to := min(from+orderPageSize, len(order))
	pterm.Printf("Glyphs %d…%d of %d\n", from, to-1, len(order))
	data := [][]string{{"ID", "Glyph", "Unicode"}}
	inverse := make(map[string][]rune)
	for r, g := range intp.font.CMap {
		inverse[g] = append(inverse[g], r)
	}
	for gid := from; gid < to; gid++ {
		data = append(data, []string{
			strconv.Itoa(gid),
			order[gid],
			formatRunes(inverse[order[gid]]),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func (intp *Intp) layoutTable(arg string) (*otgraph.LayoutTable, error) {
	if err := intp.checkFont(); err != nil {
		return nil, err
	}
	if arg == "" {
		return nil, errors.New("table tag required, GSUB or GPOS")
	}
	tag := otgraph.T(strings.ToUpper(arg))
	if tag != otgraph.GSUB && tag != otgraph.GPOS {
		return nil, fmt.Errorf("not a layout table: %s", arg)
	}
	lt := intp.font.Layout(tag)
	if lt == nil {
		return nil, fmt.Errorf("table %s not found in font", tag)
	}
	return lt, nil
}

func lookupsOp(intp *Intp, op *Op) (err error, stop bool) {
	var lt *otgraph.LayoutTable
	if lt, err = intp.layoutTable(op.arg); err != nil {
		return
	}
	printLookupList(lt)
	return nil, false
}

func coverageOp(intp *Intp, op *Op) (err error, stop bool) {
	var lt *otgraph.LayoutTable
	if lt, err = intp.layoutTable(op.arg); err != nil {
		return
	}
	index, err := strconv.Atoi(op.format)
	if err != nil {
		return fmt.Errorf("lookup index not numeric: %v", op.format), false
	}
	printLookup(lt, index)
	return nil, false
}

func canonOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	r := otfeat.Normalize(intp.font)
	data := [][]string{{"Table", "Found", "Reordered", "ClassDefs", "Aborted", "Dropped"}}
	for _, tc := range r.Tables {
		data = append(data, []string{
			tc.Table.String(),
			strconv.Itoa(tc.Found),
			strconv.Itoa(tc.Reordered),
			strconv.Itoa(tc.ClassDefsReordered),
			strconv.Itoa(tc.Aborted),
			strconv.Itoa(tc.Dropped),
		})
	}
	data = append(data, []string{
		"total",
		strconv.Itoa(r.Total.Found),
		strconv.Itoa(r.Total.Reordered),
		strconv.Itoa(r.Total.ClassDefsReordered),
		strconv.Itoa(r.Total.Aborted),
		strconv.Itoa(r.Total.Dropped),
	})
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	for _, is := range r.Issues {
		pterm.Warning.Println(is.Error())
	}
	return nil, false
}
