package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/mcvine/chord/runner"
	"github.com/mcvine/chord/solid"
	"github.com/mcvine/chord/tracer"
)

// Measure batch throughput for each supported solid type.
func Bench(ctx *cli.Context) error {
	setupLogging(ctx)

	numRays := ctx.Int("rays")
	seed := uint32(ctx.Int("seed"))

	solids := []solid.Solid{
		solid.Box{X: 2, Y: 2, Z: 2},
		solid.Sphere{Radius: 1},
		solid.Cylinder{Radius: 1, Height: 2},
		solid.Pyramid{X: 2, Y: 2, Height: 2},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Solid", "Rays", "Time", "Rays/sec", "Hit %"})

	for _, sol := range solids {
		batch, err := generateBatch(numRays, seed, sol)
		if err != nil {
			logger.Error(err)
			return err
		}

		run, err := runner.NewDefault(batch, sol, tracer.NewPerfectScheduler(), runner.Options{
			NumTracers:       ctx.Int("tracers"),
			WorkersPerTracer: ctx.Int("workers"),
			WorkGroupSize:    uint32(ctx.Int("group")),
		})
		if err != nil {
			logger.Error(err)
			return err
		}

		stats, err := run.Run(seed)
		run.Close()
		if err != nil {
			logger.Error(err)
			return err
		}

		var hits int
		for i := 0; i < numRays; i++ {
			if batch.IntersectTimes[2*i] != tracer.NoHit {
				hits++
			}
		}

		raysPerSec := float64(numRays) / stats.BatchTime.Seconds()
		table.Append([]string{
			sol.Type().String(),
			fmt.Sprintf("%d", numRays),
			stats.BatchTime.Round(time.Microsecond).String(),
			fmt.Sprintf("%.0f", raysPerSec),
			fmt.Sprintf("%3.1f", float32(hits)*100.0/float32(numRays)),
		})
	}

	table.Render()
	return nil
}
