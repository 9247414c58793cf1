package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/otfeat"
	"github.com/npillmayer/otfeat/canon"
	"github.com/npillmayer/otfeat/classify"
	"github.com/thatisuday/commando"
)

func runCanonCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	f := mustLoadFont(args["font"].Value)
	r := otfeat.Normalize(f)
	printReport(os.Stdout, r, mustFlagBool(flags["errors"], "errors"))
}

func printReport(w io.Writer, r canon.Report, showIssues bool) {
	for _, tc := range r.Tables {
		fmt.Fprintf(w, "%s: found=%d reordered=%d classdefs=%d aborted=%d dropped=%d\n",
			tc.Table, tc.Found, tc.Reordered, tc.ClassDefsReordered, tc.Aborted, tc.Dropped)
	}
	fmt.Fprintf(w, "found %d coverage table(s), sorted %d\n", r.Total.Found, r.Total.Reordered)
	fmt.Fprintf(w, "Issues: %d\n", len(r.Issues))
	if showIssues {
		for _, is := range r.Issues {
			fmt.Fprintln(w, is.Error())
		}
	}
}

func runFeaturesCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	f := mustLoadFont(args["font"].Value)
	conf := mustClassifyConfig(flags["marks"])
	var fc *classify.FeatureCandidates
	if mustFlagBool(flags["new"], "new") {
		fc = otfeat.NewCandidates(f, conf)
	} else {
		fc = otfeat.Candidates(f, conf)
	}
	printCandidates(os.Stdout, fc)
}

// printCandidates writes one line per candidate, prefixed by its feature tag.
func printCandidates(w io.Writer, fc *classify.FeatureCandidates) {
	for _, lc := range fc.Liga {
		fmt.Fprintf(w, "liga %s\n", lc)
	}
	for _, lc := range fc.Dlig {
		fmt.Fprintf(w, "dlig %s\n", lc)
	}
	singles := fc.Singles()
	for _, tag := range fc.Tags() {
		for _, ac := range singles[tag] {
			fmt.Fprintf(w, "%s %s\n", tag, ac)
		}
	}
	fmt.Fprintf(w, "%d candidate(s)\n", fc.Count())
}

func runMarksCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	f := mustLoadFont(args["font"].Value)
	for _, m := range otfeat.Marks(f, mustClassifyConfig(flags["marks"])) {
		fmt.Println(m)
	}
}
