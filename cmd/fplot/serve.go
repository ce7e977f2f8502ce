package main

import (
	"bytes"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tevino/abool/v2"
	"github.com/valyala/fasthttp"

	"github.com/zephyrtronium/fplot"
	"github.com/zephyrtronium/fplot/render"
)

// sampleTimeout bounds the time spent sampling for one request.
const sampleTimeout = 10 * time.Second

// maxParamLen bounds the length of each domain parameter of a request.
const maxParamLen = 64

// server answers sampling requests over HTTP.
type server struct {
	dom     fplot.Domain
	prec    uint
	workers int
	// draining is set once shutdown begins.
	draining *abool.AtomicBool
}

func newServer(cfg config, d fplot.Domain) *server {
	return &server{
		dom:      d,
		prec:     cfg.prec,
		workers:  cfg.workers,
		draining: abool.NewBool(false),
	}
}

// serve runs the HTTP server on cfg.addr until it receives an interrupt.
func serve(cfg config, d fplot.Domain) error {
	s := newServer(cfg, d)
	srv := &fasthttp.Server{
		Handler:      s.handle,
		Name:         "fplot",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Print("shutting down")
		s.draining.Set()
		if err := srv.Shutdown(); err != nil {
			log.Printf("error in Shutdown: %v", err)
		}
	}()
	log.Printf("serving on %q, domain %v", cfg.addr, d)
	return srv.ListenAndServe(cfg.addr)
}

// handle serves
//
//	/sample?expr=...  JSON samples
//	/plot?expr=...    SVG plot
//
// Either also accepts min, max, and step to override the domain.
func (s *server) handle(ctx *fasthttp.RequestCtx) {
	if s.draining.IsSet() {
		ctx.Error("shutting down", fasthttp.StatusServiceUnavailable)
		return
	}
	path := string(ctx.Path())
	if path != "/sample" && path != "/plot" {
		ctx.NotFound()
		return
	}
	args := ctx.QueryArgs()
	src := string(args.Peek("expr"))
	if src == "" {
		ctx.Error("missing expr", fasthttp.StatusBadRequest)
		return
	}
	d, err := s.domain(args)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusBadRequest)
		return
	}
	e, err := fplot.Compile(src)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusBadRequest)
		return
	}
	sctx, cancel := context.WithTimeout(context.Background(), sampleTimeout)
	defer cancel()
	pts, err := fplot.SampleParallel(sctx, e, d, s.workers, fplot.Prec(s.prec))
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusServiceUnavailable)
		return
	}
	switch path {
	case "/sample":
		ctx.SetContentType("application/json")
		err = render.JSON(ctx, pts)
	case "/plot":
		ctx.SetContentType("image/svg+xml")
		opt := render.DefaultSVGOptions()
		opt.XMin, _ = d.Min.Float64()
		opt.XMax, _ = d.Max.Float64()
		opt.Title = src
		err = render.SVG(ctx, pts, opt)
	}
	if err != nil {
		log.Printf("error writing %s for %q: %v", path, src, err)
	}
}

// domain returns the server's domain with any bounds given in args.
func (s *server) domain(args *fasthttp.Args) (fplot.Domain, error) {
	if !args.Has("min") && !args.Has("max") && !args.Has("step") {
		return s.dom, nil
	}
	var bad error
	get := func(key string, def string) string {
		v := args.Peek(key)
		switch {
		case len(v) == 0:
			return def
		case len(v) > maxParamLen:
			bad = &fplot.DomainSpecError{Reason: key + " is too long"}
		case bytes.ContainsAny(v, "eE"):
			// big.Rat allocates for the whole exponent.
			bad = &fplot.DomainSpecError{Reason: key + " has an exponent"}
		}
		return string(v)
	}
	lo := get("min", s.dom.Min.RatString())
	hi := get("max", s.dom.Max.RatString())
	step := get("step", s.dom.Step.RatString())
	if bad != nil {
		return fplot.Domain{}, bad
	}
	return fplot.NewDomain(lo, hi, step)
}
