package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/expectations"
	"github.com/simon-weber/Unofficial-Google-Music-API/internal/jsarray"
	"github.com/simon-weber/Unofficial-Google-Music-API/internal/musicmanager"
	"github.com/simon-weber/Unofficial-Google-Music-API/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
	input  io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
	Input  io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		input:  opts.Input,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		repairCommand, inspectCommand, expectationsCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	_, err = fmt.Fprintln(r.output, string(output))
	return err
}

// Repair reads jsarray text from the file argument (or stdin) and writes the
// strict JSON form.
func (r *Runner) Repair(ctx context.Context, cmd *cli.Command) error {
	var data []byte
	var err error

	if path := cmd.StringArg("file"); path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(r.input)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if cmd.Bool("verify") {
		if _, err := jsarray.Loads(data); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(r.output, jsarray.ToJSON(string(data)))
	return err
}

// Inspect builds the metadata batch for a single file and prints it.
func (r *Runner) Inspect(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: file", shared.ErrMissingArgument)
	}

	identity, err := r.identity()
	if err != nil {
		return err
	}

	protocol := musicmanager.NewProtocol(identity)
	req, _, err := protocol.BuildMetadataRequest([]string{path})
	if err != nil {
		return err
	}

	return r.writeJSON(req.Tracks[0], cmd.Bool("pretty"))
}

// expectationRow is the printable form of one registry entry; transforms are
// functions and cannot be serialized.
type expectationRow struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Mutable       bool   `json:"mutable"`
	AllowedValues []any  `json:"allowedValues,omitempty"`
	Volatile      bool   `json:"volatile,omitempty"`
	DependsOn     string `json:"dependsOn,omitempty"`
	Optional      bool   `json:"optional,omitempty"`
}

// Expectations dumps the metadata field registry in name order.
func (r *Runner) Expectations(ctx context.Context, cmd *cli.Command) error {
	rows := []expectationRow{}
	for _, name := range expectations.Names() {
		e, _ := expectations.Get(name)
		rows = append(rows, expectationRow{
			Name:          e.Name,
			Type:          string(e.Type),
			Mutable:       e.Mutable,
			AllowedValues: e.AllowedValues,
			Volatile:      e.Volatile,
			DependsOn:     e.DependsOn,
			Optional:      e.Optional,
		})
	}

	return r.writeJSON(rows, cmd.Bool("pretty"))
}

// ConfigInit writes the example config file.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("wrote config file", "path", path)
	return nil
}

// identity resolves the uploader identity from config, discovering missing
// values from the machine.
func (r *Runner) identity() (musicmanager.ClientIdentity, error) {
	identity := musicmanager.ClientIdentity{
		Address:  r.config.Client.Address,
		Hostname: r.config.Client.Hostname,
	}
	if identity.Address != "" && identity.Hostname != "" {
		return identity, nil
	}

	discovered, err := musicmanager.NewClientIdentity()
	if err != nil {
		return musicmanager.ClientIdentity{}, err
	}
	if identity.Address == "" {
		identity.Address = discovered.Address
	}
	if identity.Hostname == "" {
		identity.Hostname = discovered.Hostname
	}
	return identity, nil
}
