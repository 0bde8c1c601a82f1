// SPDX-License-Identifier: GPL-2.0-or-later

// q2cm inspects the collision model of Quake 2 maps.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	flagConfig   = "config"
	flagBaseDir  = "basedir"
	flagGame     = "game"
	flagLogLevel = "log-level"
	flagNoAreas  = "noareas"
	flagSet      = "set"
	flagJSON     = "json"
	flagMins     = "mins"
	flagMaxs     = "maxs"
	flagMask     = "mask"
	flagModel    = "model"
	flagOrigin   = "origin"
	flagAngles   = "angles"
	flagPHS      = "phs"
	flagOpen     = "open"
)

var app = &cli.App{
	Name:            "q2cm",
	Usage:           "query the collision model of Quake 2 maps",
	HideHelpCommand: true,
	Before:          setupAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Value:   ".",
			Usage:   "read q2cm.json from `DIR`",
		},
		&cli.StringFlag{
			Name:  flagBaseDir,
			Usage: "directory holding baseq2",
		},
		&cli.StringFlag{
			Name:  flagGame,
			Usage: "game directory searched before baseq2",
		},
		&cli.StringFlag{
			Name:  flagLogLevel,
			Usage: "debug, info, warn or error",
		},
		&cli.BoolFlag{
			Name:  flagNoAreas,
			Usage: "treat all areas as connected",
		},
		&cli.StringSliceFlag{
			Name:  flagSet,
			Usage: "set a cvar as `NAME=VALUE`",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "info",
			Usage:     "print the sizes of a map",
			ArgsUsage: "<map>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  flagJSON,
					Usage: "print as JSON",
				},
			},
			Action: infoAction,
		},
		{
			Name:      "contents",
			Usage:     "print the contents and leaf of a point",
			ArgsUsage: "<map> <x> <y> <z>",
			Flags:     []cli.Flag{modelFlag(), originFlag(), anglesFlag()},
			Action:    contentsAction,
		},
		{
			Name:      "trace",
			Usage:     "sweep a box from one point to another",
			ArgsUsage: "<map> <x1> <y1> <z1> <x2> <y2> <z2>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  flagMins,
					Value: "0 0 0",
					Usage: "box mins as \"x y z\"",
				},
				&cli.StringFlag{
					Name:  flagMaxs,
					Value: "0 0 0",
					Usage: "box maxs as \"x y z\"",
				},
				&cli.StringFlag{
					Name:  flagMask,
					Value: "solid",
					Usage: "contents mask: all, solid, playersolid, liquid, shot or a number",
				},
				modelFlag(), originFlag(), anglesFlag(),
			},
			Action: traceAction,
		},
		{
			Name:      "pvs",
			Usage:     "print the clusters visible from a cluster",
			ArgsUsage: "<map> <cluster>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  flagPHS,
					Usage: "print the hearable set instead",
				},
			},
			Action: pvsAction,
		},
		{
			Name:      "areas",
			Usage:     "print which areas are connected",
			ArgsUsage: "<map>",
			Flags: []cli.Flag{
				&cli.IntSliceFlag{
					Name:  flagOpen,
					Usage: "open the given area portals",
				},
			},
			Action: areasAction,
		},
		{
			Name:   "cvars",
			Usage:  "list the cvars and their values",
			Action: cvarsAction,
		},
	},
}

func modelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  flagModel,
		Value: "",
		Usage: "inline model like *1 instead of the world",
	}
}

func originFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  flagOrigin,
		Value: "0 0 0",
		Usage: "model origin as \"x y z\"",
	}
}

func anglesFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  flagAngles,
		Value: "0 0 0",
		Usage: "model angles as \"pitch yaw roll\"",
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "q2cm: %v\n", err)
		os.Exit(1)
	}
}
