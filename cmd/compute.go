package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/turner-renderer/renderer/mesh/accel"
	"github.com/turner-renderer/renderer/mesh/subdiv"
	"github.com/turner-renderer/renderer/progress"
	"github.com/turner-renderer/renderer/radiosity"
	"github.com/turner-renderer/renderer/scenefile"
)

// ComputeFlags are the flags accepted by the compute command.
var ComputeFlags = []cli.Flag{
	cli.Float64Flag{
		Name:  "feps",
		Usage: "link-acceptance threshold on the estimated form factor",
	},
	cli.Float64Flag{
		Name:  "aeps",
		Usage: "minimum allowed patch area",
	},
	cli.Float64Flag{
		Name:  "bfeps",
		Usage: "maximum allowed unresolved radiant power per link",
	},
	cli.IntFlag{
		Name:  "max-iterations",
		Usage: "maximum gather/push-pull sweeps per refinement pass",
	},
	cli.Float64Flag{
		Name:  "delta",
		Usage: "stop sweeping early once every leaf's radiosity change falls below this on every channel",
	},
	cli.IntFlag{
		Name:  "max-refinement-passes",
		Usage: "cap on the outer solve/refine-links loop (0 = unbounded)",
	},
	cli.BoolFlag{
		Name:  "progress",
		Usage: "print a progress bar for each solver phase",
	},
}

// Compute runs the hierarchical radiosity solver against a wavefront scene
// and prints the resulting patch/energy statistics.
func Compute(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	opts := radiosity.DefaultOptions()
	if v := ctx.Float64("feps"); v > 0 {
		opts.FEps = float32(v)
	}
	if v := ctx.Float64("aeps"); v > 0 {
		opts.AEps = float32(v)
	}
	if v := ctx.Float64("bfeps"); v > 0 {
		opts.BFEps = float32(v)
	}
	if v := ctx.Int("max-iterations"); v > 0 {
		opts.MaxIterations = v
	}
	if v := ctx.Float64("delta"); v > 0 {
		opts.Delta = float32(v)
	}
	opts.MaxRefinementPasses = ctx.Int("max-refinement-passes")

	sceneFile := ctx.Args().First()
	logger.Noticef("loading scene: %s", sceneFile)
	triangles, err := scenefile.Load(sceneFile)
	if err != nil {
		return err
	}
	logger.Noticef("loaded %d root triangles", len(triangles))

	logger.Notice("building BVH accelerator")
	bvh := accel.Build(triangles)

	mesh := subdiv.New()
	for _, t := range triangles {
		mesh.AddRootFace(t)
	}

	var reporter progress.Reporter = progress.Discard{}
	if ctx.Bool("progress") {
		reporter = progress.NewBar(os.Stdout)
	}

	solver := radiosity.New(bvh, mesh, bvh, opts, reporter)

	logger.Notice("computing radiosity solution")
	solver.Compute()

	displaySolverStats(solver.Stats())

	return nil
}

func displaySolverStats(stats radiosity.Stats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Sweeps", fmt.Sprintf("%d", stats.Sweeps)})
	table.Append([]string{"Refinement passes", fmt.Sprintf("%d", stats.RefinementPasses)})
	table.Append([]string{"Leaf patches", fmt.Sprintf("%d", stats.LeafCount)})
	table.Append([]string{"Total radiant power", fmt.Sprintf("%.4f %.4f %.4f", stats.TotalPower[0], stats.TotalPower[1], stats.TotalPower[2])})
	table.Render()

	logger.Noticef("solver statistics\n%s", buf.String())
}
