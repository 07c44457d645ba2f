package main

import (
	"os"

	"github.com/mcvine/chord/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "chord"
	app.Usage = "trace ray batches through solids and sample scattering sites"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}

	traceFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "shape",
			Value: "box",
			Usage: "target solid type (box, sphere, cylinder, pyramid)",
		},
		cli.Float64Flag{
			Name:  "x",
			Value: 2.0,
			Usage: "solid extent along the x axis",
		},
		cli.Float64Flag{
			Name:  "y",
			Value: 2.0,
			Usage: "solid extent along the y axis",
		},
		cli.Float64Flag{
			Name:  "z",
			Value: 2.0,
			Usage: "solid extent along the z axis",
		},
		cli.Float64Flag{
			Name:  "radius",
			Value: 1.0,
			Usage: "solid radius (sphere, cylinder)",
		},
		cli.Float64Flag{
			Name:  "height",
			Value: 2.0,
			Usage: "solid height (cylinder, pyramid)",
		},
		cli.IntFlag{
			Name:  "rays",
			Value: 100000,
			Usage: "number of rays to generate",
		},
		cli.IntFlag{
			Name:  "seed",
			Value: 42,
			Usage: "seed for ray generation and scattering site sampling",
		},
		cli.IntFlag{
			Name:  "tracers",
			Value: 1,
			Usage: "number of tracers to split the batch between",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "workers per tracer (0 selects one per cpu)",
		},
		cli.IntFlag{
			Name:  "group",
			Value: 0,
			Usage: "work-group size hint (0 selects an even split)",
		},
		cli.Float64Flag{
			Name:  "atten",
			Value: 0.0,
			Usage: "attenuation length for the probability update (0 disables)",
		},
		cli.BoolFlag{
			Name:  "no-scatter",
			Usage: "stop after the entry/exit pairs, skip scattering site sampling",
		},
		cli.StringFlag{
			Name:  "out, o",
			Usage: "write scattering sites to this csv file",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:  "trace",
			Usage: "trace a generated ray batch through a solid",
			Description: `
Generate a batch of rays upstream of the selected solid, find the entry and
exit points of each ray and sample one scattering site per intersected chord.`,
			Flags:  traceFlags,
			Action: cmd.TraceBatch,
		},
		{
			Name:  "bench",
			Usage: "measure batch throughput for each solid type",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "rays",
					Value: 1000000,
					Usage: "number of rays per solid",
				},
				cli.IntFlag{
					Name:  "seed",
					Value: 42,
					Usage: "seed for ray generation",
				},
				cli.IntFlag{
					Name:  "tracers",
					Value: 1,
					Usage: "number of tracers to split the batch between",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "workers per tracer (0 selects one per cpu)",
				},
				cli.IntFlag{
					Name:  "group",
					Value: 0,
					Usage: "work-group size hint (0 selects an even split)",
				},
			},
			Action: cmd.Bench,
		},
	}

	app.Run(os.Args)
}
