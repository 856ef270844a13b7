package cmd

import (
	"github.com/turner-renderer/renderer/log"
	"github.com/urfave/cli"
)

var logger = log.New("renderer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
