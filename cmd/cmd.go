// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// repairCommand turns lenient interchange text into strict JSON
func repairCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "repair",
		Usage: "Repair lenient jsarray text into strict JSON",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "Parse the repaired output and fail if it is still invalid",
			},
		},
		Action: r.Repair,
	}
}

// inspectCommand reports what would be sent for a local audio file
func inspectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Show the upload metadata derived from a local mp3",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Inspect,
	}
}

// expectationsCommand dumps the metadata field registry
func expectationsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "expectations",
		Usage: "Dump the metadata field registry",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Expectations,
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write an example config file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Where to write the config file",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}
