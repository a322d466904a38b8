// Command grasssim runs a headless N-body simulation for a fixed number of
// steps and reports the final health of the table.
package main

import (
	"flag"
	"os"
	"time"

	kitlog "github.com/go-kit/kit/log"

	"grass"
	"grass/examples/figure8"
	"grass/examples/galaxies"
)

var (
	steps    int
	timeStep float64
	verbose  bool
)

func init() {
	flag.IntVar(&steps, "steps", 1000, "number of simulation steps to run")
	flag.Float64Var(&timeStep, "dt", 0.01, "fixed time step")
	flag.BoolVar(&verbose, "verbose", false, "log every step instead of only the summary")
}

func main() {
	flag.Parse()

	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "ts", kitlog.DefaultTimestampUTC, "cmd", "grasssim")

	cfg := grass.Config()
	klog.Log("event", "config", "particles_limit", cfg.ParticlesLimit, "galaxies", cfg.UseGalaxies)

	tb := grass.NewTable()
	tb.G = float32(cfg.G)
	tb.TanAngleThreshold = float32(cfg.TanThreshold)
	tb.SetLogger(kitlog.With(klog, "component", "table"))

	// GRASS_GALAXIES selects the galaxies initial condition over figure-8,
	// per spec.md §6 and original_source/demo/main.cpp's do_main().
	var initial []grass.Particle
	if cfg.UseGalaxies {
		initial = galaxies.Cluster(cfg.Galaxies, cfg.ParticlesLimit)
	} else {
		initial = figure8.Particles()
		tb.G = 1.0 // figure-8 requires G = 1, per spec.md §8 scenario 1.
	}
	for _, p := range initial {
		tb.Push(p)
	}
	klog.Log("event", "start", "particles", tb.Len(), "steps", steps, "dt", timeStep)

	start := time.Now()
	dt := float32(timeStep)
	for i := 0; i < steps; i++ {
		tb.Step(dt)
		if verbose {
			klog.Log("event", "step", "i", i, "healthy", tb.Healthy())
		}
		if !tb.Healthy() {
			klog.Log("event", "unhealthy", "i", i)
			os.Exit(1)
		}
	}
	klog.Log("event", "done", "elapsed", time.Since(start), "healthy", tb.Healthy())
}
