package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/justyntemme/autosaver/pkg/framework/autosave"
	"github.com/justyntemme/autosaver/pkg/framework/setting"
)

// Build information, set via ldflags.
var Version = "dev"

// now is replaced in tests.
var now = time.Now

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "autosaverctl",
		Usage:   "Manage the autosaver plugin settings",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Path of the settings file",
				EnvVars: []string{"AUTOSAVER_SETTINGS"},
				Value:   setting.FileName,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the autosave interval",
				Action: showSetting,
			},
			{
				Name:   "init",
				Usage:  "Create the settings file with the default interval if it is missing",
				Action: initSetting,
			},
			{
				Name:      "set",
				Usage:     "Store a new autosave interval",
				ArgsUsage: "<seconds>",
				Action:    setSetting,
			},
			{
				Name:   "name",
				Usage:  "Print the file name an autosave would get right now",
				Action: printName,
			},
		},
	}
}

func showSetting(c *cli.Context) error {
	path := c.String("file")

	s := setting.Default()
	err := s.Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(c.App.Writer, "%s does not exist, the plugin will create it\n", path)
	case err != nil:
		return err
	}

	fmt.Fprintf(c.App.Writer, "duration: %d seconds (%s)\n", s.Seconds, s.Interval())
	return nil
}

func initSetting(c *cli.Context) error {
	path := c.String("file")

	s, err := setting.LoadOrCreate(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s: duration %d seconds\n", path, s.Seconds)
	return nil
}

func setSetting(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one argument, got %d", c.NArg())
	}

	seconds, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", c.Args().First(), err)
	}
	if seconds < 0 {
		return fmt.Errorf("invalid duration %d: must not be negative", seconds)
	}

	path := c.String("file")
	if err := (setting.Setting{Seconds: seconds}).Store(path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s: duration %d seconds\n", path, seconds)
	return nil
}

func printName(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, autosave.FileName(now()))
	return nil
}
