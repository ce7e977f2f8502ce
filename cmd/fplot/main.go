package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/zephyrtronium/fplot"
	"github.com/zephyrtronium/fplot/render"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("fplot: ")
	cfg, args, err := parseArgs(os.Args)
	if err != nil {
		log.Print(err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if cfg.help {
		fmt.Print(usage)
		return
	}
	if cfg.noColor {
		color.NoColor = true
	}
	d, err := fplot.NewDomain(cfg.min, cfg.max, cfg.step)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.addr != "" {
		if err := serve(cfg, d); err != nil {
			log.Fatal(err)
		}
		return
	}

	srcs := args
	if len(srcs) == 0 {
		srcs, err = readLines(os.Stdin)
		if err != nil {
			log.Fatal(err)
		}
	}
	out := bufio.NewWriter(os.Stdout)
	failed := false
	for _, src := range srcs {
		if err := plot(out, cfg, d, src); err != nil {
			out.Flush()
			report(os.Stderr, src, err)
			failed = true
		}
	}
	if err := out.Flush(); err != nil {
		log.Fatal(err)
	}
	if failed {
		os.Exit(1)
	}
}

// readLines reads the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			lines = append(lines, sc.Text())
		}
	}
	return lines, sc.Err()
}

// plot compiles and samples one expression and writes it in the configured
// format.
func plot(w io.Writer, cfg config, d fplot.Domain, src string) error {
	e, err := fplot.Compile(src)
	if err != nil {
		return err
	}
	if cfg.echo {
		fmt.Fprintf(w, "%v\n", e)
	}
	pts, err := fplot.SampleParallel(context.Background(), e, d, cfg.workers, fplot.Prec(cfg.prec))
	if err != nil {
		return err
	}
	switch cfg.format {
	case "json":
		return render.JSON(w, pts)
	case "svg":
		opt := render.DefaultSVGOptions()
		opt.XMin, _ = d.Min.Float64()
		opt.XMax, _ = d.Max.Float64()
		opt.Title = src
		return render.SVG(w, pts, opt)
	default:
		return render.Table(w, pts)
	}
}

// report writes an error for an expression. Errors with positions also show
// the normalized expression with a caret under the offending character.
func report(w io.Writer, src string, err error) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %s: %v\n", red("error:"), src, err)
	var ierr fplot.InputError
	if !errors.As(err, &ierr) {
		return
	}
	norm := fplot.Normalize(src)
	fmt.Fprintf(w, "\t%s\n\t%s%s\n", norm, strings.Repeat(" ", ierr.Pos()), red("^"))
}
