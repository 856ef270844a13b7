package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/turner-renderer/renderer/cmd"
	"github.com/turner-renderer/renderer/log"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-radiosity"
	app.Usage = "precompute view-independent lighting with hierarchical radiosity"
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
	app.Commands = []cli.Command{
		{
			Name:      "compute",
			Usage:     "solve for the radiosity of a scene",
			ArgsUsage: "scene_file.obj",
			Description: `
Parse a wavefront obj scene, build a BVH visibility accelerator and a
half-edge mesh refiner, and run the hierarchical radiosity solver to
convergence. Prints solver statistics once the solve/refine-links loop
settles.`,
			Flags:  cmd.ComputeFlags,
			Action: cmd.Compute,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New("renderer").Error(err)
		os.Exit(1)
	}
}
