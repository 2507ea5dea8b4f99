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
	var single bool

	flag.Usage = func() {
		const msg = `Usage: go-fitsio-listhead filename[ext]


List the FITS header keywords in a single extension, or, if
ext is not given, list the keywords in all the extensions.

Examples:

   go-fitsio-listhead file.fits      - list every header in the file
   go-fitsio-listhead file.fits[0]   - list primary array header
   go-fitsio-listhead file.fits[2]   - list header of 2nd extension

ext is a numeric HDU index (0 is the primary array); the
file.fits+2 and file.fits[EXTNAME] forms are not accepted.

Note that it may be necessary to enclose the input file
name in single quote characters on the Unix command line.
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
			fmt.Fprintf(os.Stderr, "**error** invalid extension %q\n", fname[i:])
			return 1
		}
		fname, ext = fname[:i], v
	}
	r, err := os.Open(fname)
	if err != nil {
		fmt.Fprintf(os.Stderr, "**error** %v\n", err)
		return 1
	}
	defer r.Close()

	// list only a single header if a specific extension was given
	single = ext >= 0

	f := fits.Open(fits.NewFileSource(r))
	first, n := 0, f.NumHdus()
	if single {
		first, n = ext, ext+1
	}

	for i := first; i < n; i++ {
		hdr, err := f.HeaderAt(i)
		if err != nil {
			fmt.Fprintf(os.Stderr, "**error** %v\n", err)
			return 1
		}
		if w := f.WarningAt(i); w != nil {
			fmt.Fprintf(os.Stderr, "**warning** HDU #%d: %v\n", i, w)
		}

		fmt.Printf("Header listing for HDU #%d:\n", i)
		for _, card := range hdr.Cards() {
			comment := ""
			if card.Comment != nil {
				comment = *card.Comment
			}
			value := ""
			if card.Value != nil {
				value = card.Value.String()
			}
			fmt.Printf("%-8s= %-29s / %s\n", card.Keyword, value, comment)
		}
		fmt.Printf("END\n\n")

		if single {
			break
		}
	}

	return 0
}
