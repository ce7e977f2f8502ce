package main

import (
	"fmt"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"
)

const optstring = "a:m:M:s:p:j:f:tCh"

const usage = `usage: fplot [-m min] [-M max] [-s step] [-p prec] [-j workers]
             [-f table|json|svg] [-t] [-C] [expr ...]
       fplot -a addr [-m min] [-M max] [-s step] [-p prec] [-j workers]

Samples each expression over a grid of x values. With no expressions, reads
one expression per line from standard input.

  -a addr     serve /sample and /plot over HTTP on addr
  -m min      lowest x (default -10)
  -M max      highest x (default 10)
  -s step     grid spacing (default 0.1)
  -p prec     bits of precision for inexact values (default 128)
  -j workers  sampling goroutines per expression (default GOMAXPROCS)
  -f format   output format: table, json, or svg (default table)
  -t          print each parse tree before its samples
  -C          disable color
  -h          show this help
`

// config is the command's configuration, from its options.
type config struct {
	addr    string
	min     string
	max     string
	step    string
	prec    uint
	workers int
	format  string
	echo    bool
	noColor bool
	help    bool
}

func defaultConfig() config {
	return config{
		min:    "-10",
		max:    "10",
		step:   "0.1",
		prec:   128,
		format: "table",
	}
}

// parseArgs parses the command line, including the program name in args[0].
// It returns the configuration and the remaining operands.
func parseArgs(args []string) (config, []string, error) {
	cfg := defaultConfig()
	opts, optind, err := getopt.Getopts(args, optstring)
	if err != nil {
		return cfg, nil, err
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'a':
			cfg.addr = opt.Value
		case 'm':
			cfg.min = opt.Value
		case 'M':
			cfg.max = opt.Value
		case 's':
			cfg.step = opt.Value
		case 'p':
			p, err := strconv.ParseUint(opt.Value, 10, 32)
			if err != nil || p == 0 {
				return cfg, nil, fmt.Errorf("invalid -p %q: precision must be a positive integer", opt.Value)
			}
			cfg.prec = uint(p)
		case 'j':
			j, err := strconv.Atoi(opt.Value)
			if err != nil || j < 0 {
				return cfg, nil, fmt.Errorf("invalid -j %q: workers must be a non-negative integer", opt.Value)
			}
			cfg.workers = j
		case 'f':
			switch opt.Value {
			case "table", "json", "svg":
				cfg.format = opt.Value
			default:
				return cfg, nil, fmt.Errorf("invalid -f %q: format must be table, json, or svg", opt.Value)
			}
		case 't':
			cfg.echo = true
		case 'C':
			cfg.noColor = true
		case 'h':
			cfg.help = true
		}
	}
	return cfg, args[optind:], nil
}
