package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/terrainmap"
	"github.com/bodgit/terrainmap/terrain"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "terrainmap"
	app.Usage = "Convert a color map and height map into a chunked terrain map"
	app.Description = "Writes " + terrain.Filename + " to the current directory. Both images must be the same size and each dimension a multiple of 32."
	app.Version = "1.0.0"
	app.ArgsUsage = "COLORMAP HEIGHTMAP"

	app.Action = func(c *cli.Context) error {
		if c.NArg() != 2 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		cwd, err := os.Getwd()
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		m := terrainmap.New(log.New(os.Stderr, "", 0))

		if err := m.Convert(c.Args().Get(0), c.Args().Get(1), filepath.Join(cwd, terrain.Filename)); err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
