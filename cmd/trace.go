package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/mcvine/chord/runner"
	"github.com/mcvine/chord/solid"
	"github.com/mcvine/chord/tracer"
	"github.com/mcvine/chord/types"
)

// Build the target solid from the cli flags.
func solidFromFlags(ctx *cli.Context) (solid.Solid, error) {
	switch shape := ctx.String("shape"); shape {
	case "box":
		return solid.Box{
			X: float32(ctx.Float64("x")),
			Y: float32(ctx.Float64("y")),
			Z: float32(ctx.Float64("z")),
		}, nil
	case "sphere":
		return solid.Sphere{Radius: float32(ctx.Float64("radius"))}, nil
	case "cylinder":
		return solid.Cylinder{
			Radius: float32(ctx.Float64("radius")),
			Height: float32(ctx.Float64("height")),
		}, nil
	case "pyramid":
		return solid.Pyramid{
			X:      float32(ctx.Float64("x")),
			Y:      float32(ctx.Float64("y")),
			Height: float32(ctx.Float64("height")),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported shape %q", shape)
	}
}

// A radius that encloses the solid, used for aiming the generated rays.
func boundingRadius(sol solid.Solid) float32 {
	switch s := sol.(type) {
	case solid.Box:
		return types.XYZ(s.X, s.Y, s.Z).Len() * 0.5
	case solid.Sphere:
		return s.Radius
	case solid.Cylinder:
		return types.XYZ(2*s.Radius, 2*s.Radius, s.Height).Len() * 0.5
	case solid.Pyramid:
		return types.XYZ(s.X, s.Y, s.Height).Len() * 0.5
	}
	return 1.0
}

// Generate a batch of rays starting upstream of the solid on the -Z side
// and aimed at jittered points inside its bounding radius.
func generateBatch(numRays int, seed uint32, sol solid.Solid) (*tracer.RayBatch, error) {
	rng := rand.New(rand.NewSource(int64(seed)))
	ext := boundingRadius(sol)

	origins := make([]types.Vec3, numRays)
	velocities := make([]types.Vec3, numRays)
	for i := 0; i < numRays; i++ {
		origins[i] = types.XYZ(
			(2*rng.Float32()-1)*ext,
			(2*rng.Float32()-1)*ext,
			-4*ext,
		)
		target := types.XYZ(
			(2*rng.Float32()-1)*ext*0.5,
			(2*rng.Float32()-1)*ext*0.5,
			(2*rng.Float32()-1)*ext*0.5,
		)
		speed := 0.5 + 1.5*rng.Float32()
		velocities[i] = target.Sub(origins[i]).Normalize().Mul(speed)
	}

	return tracer.NewRayBatch(origins, velocities)
}

// Trace a generated ray batch through a solid and report the results.
func TraceBatch(ctx *cli.Context) error {
	setupLogging(ctx)

	sol, err := solidFromFlags(ctx)
	if err != nil {
		logger.Error(err)
		return err
	}
	if err = sol.Validate(); err != nil {
		logger.Error(err)
		return err
	}

	numRays := ctx.Int("rays")
	seed := uint32(ctx.Int("seed"))

	batch, err := generateBatch(numRays, seed, sol)
	if err != nil {
		logger.Error(err)
		return err
	}

	run, err := runner.NewDefault(batch, sol, tracer.NewNaiveScheduler(), runner.Options{
		NumTracers:       ctx.Int("tracers"),
		WorkersPerTracer: ctx.Int("workers"),
		WorkGroupSize:    uint32(ctx.Int("group")),
		Attenuation:      float32(ctx.Float64("atten")),
		DisableScatter:   ctx.Bool("no-scatter"),
	})
	if err != nil {
		logger.Error(err)
		return err
	}
	defer run.Close()

	logger.Noticef("tracing %d rays through %s solid", numRays, sol.Type())

	stats, err := run.Run(seed)
	if err != nil {
		logger.Error(err)
		return err
	}

	var hits, scattered int
	for i := 0; i < numRays; i++ {
		if batch.IntersectTimes[2*i] != tracer.NoHit {
			hits++
		}
		if batch.ScatterTimes[i] != tracer.NoScatter {
			scattered++
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Tracer", "Rays", "Batch %", "Time"})
	for _, trStat := range stats.Tracers {
		table.Append([]string{
			trStat.Id,
			fmt.Sprintf("%d", trStat.NumRays),
			fmt.Sprintf("%3.1f", trStat.BatchPercent),
			trStat.BatchTime.String(),
		})
	}
	table.SetFooter([]string{"total", fmt.Sprintf("%d", numRays), "100.0", stats.BatchTime.String()})
	table.Render()

	logger.Noticef("%d/%d rays hit the solid, %d scattered", hits, numRays, scattered)

	if out := ctx.String("out"); out != "" {
		if err = writeScatterSites(out, batch); err != nil {
			logger.Error(err)
			return err
		}
		logger.Noticef("wrote scattering sites to %s", out)
	}

	return nil
}

// Dump the scattering sites of all scattered rays as csv.
func writeScatterSites(path string, batch *tracer.RayBatch) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "x,y,z,t")
	for i := 0; i < batch.NumRays(); i++ {
		if batch.ScatterTimes[i] == tracer.NoScatter {
			continue
		}
		pos := batch.ScatterPos[i]
		fmt.Fprintf(f, "%g,%g,%g,%g\n", pos[0], pos[1], pos[2], batch.ScatterTimes[i])
	}

	return nil
}
