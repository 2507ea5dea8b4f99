package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	fits "github.com/astrogo/fitsnav"
)

func main() {
	rc := run()
	os.Exit(rc)
}

func run() int {

	flag.Usage = func() {
		const msg = `Usage: go-fitsio-tablist filename[ext]

List the contents of a FITS binary table extension.

Examples:
  tablist tab.fits[1]   - list extension #1

ASCII-table (XTENSION='TABLE') and unrecognized extensions are skipped
with a warning; only BINTABLE extensions are listed.
`
		fmt.Fprintf(os.Stderr, "%v\n", msg)
		flag.PrintDefaults()
	}

	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		return 1
	}

	fname := flag.Arg(0)
	ext := -1
	if i := strings.Index(fname, "["); i >= 0 && strings.HasSuffix(fname, "]") {
		v, err := strconv.Atoi(fname[i+1 : len(fname)-1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid extension %q\n", fname[i:])
			return 1
		}
		fname, ext = fname[:i], v
	}
	r, err := os.Open(fname)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer r.Close()

	f := fits.Open(fits.NewFileSource(r))
	first, n := 0, f.NumHdus()
	if ext >= 0 {
		first, n = ext, ext+1
	}

	for i := first; i < n; i++ {
		kind, err := f.HduKindAt(i)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if kind != fits.KindBinaryTable {
			if kind == fits.KindAsciiTable || kind == fits.KindUnknownExtension {
				fmt.Fprintf(os.Stderr, "Warning: HDU #%d is not a binary table, skipped\n", i)
			}
			continue
		}

		table, err := f.Table(i)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}

		layout := table.Layout()
		nrows := table.RowCount()
		maxname := 10
		for _, col := range layout.Columns {
			if len(col.Name) > maxname {
				maxname = len(col.Name)
			}
		}

		hdrline := strings.Repeat("=", 80-15)
		rowfmt := fmt.Sprintf("%%-%ds | %%v\n", maxname)
		w := os.Stdout

		for irow := int64(0); irow < nrows; irow++ {
			row, err := table.ReadRow(irow)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: (row=%d) %v\n", irow, err)
				return 1
			}
			fmt.Fprintf(w, "== %05d/%05d %s\n", irow, nrows, hdrline)
			for i, col := range layout.Columns {
				fmt.Fprintf(w, rowfmt, col.Name, row[i].String())
			}
		}
	}

	return 0
}
