package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/errlog-go/errlog"
)

var cli struct {
	Format    string   `help:"Output format." enum:"pretty,json" default:"pretty"`
	Offset    int      `help:"Leading stack frames to discard." default:"0"`
	Limit     int      `help:"Maximum stack frames to keep, negative for unlimited." default:"-1"`
	CodeFrame bool     `help:"Include a source snippet for the first frame."`
	RawStack  bool     `help:"Also print the unprocessed stack text."`
	NoColor   bool     `help:"Disable colorized output."`
	Name      string   `help:"Error name shown in the header." default:"Error"`
	Message   string   `help:"Error message shown in the header, defaults to the first trace line."`
	Paths     []string `arg:"" optional:"" type:"existingfile" help:"Trace files to read, stdin when omitted."`
}

// traceInput adapts a raw trace read from a file or stdin to the error
// shape the builder consumes.
type traceInput struct {
	name    string
	message string
	stack   string
}

func (t *traceInput) Error() string      { return t.message }
func (t *traceInput) Name() string       { return t.name }
func (t *traceInput) StackTrace() string { return t.stack }

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("errlog"),
		kong.Description("Parse raw stack traces and render them as structured error reports."),
	)
	ctx.FatalIfErrorf(run())
}

func run() error {
	noColor := cli.NoColor
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		noColor = true
	}

	logger := errlog.NewLogger(errlog.Settings{
		Format:    errlog.Format(cli.Format),
		NoColor:   noColor,
		ErrOutput: os.Stdout,
	})

	opts := []errlog.ErrorOption{
		errlog.WithStackTrace(),
		errlog.WithStackOffset(cli.Offset),
	}
	if cli.Limit >= 0 {
		opts = append(opts, errlog.WithStackLimit(cli.Limit))
	}
	if cli.CodeFrame {
		opts = append(opts, errlog.WithCodeFrame())
	}
	if cli.RawStack {
		opts = append(opts, errlog.WithRawStack())
	}

	traces, err := readTraces()
	if err != nil {
		return err
	}
	for _, raw := range traces {
		message := cli.Message
		if message == "" {
			message = strings.TrimSpace(strings.SplitN(raw, "\n", 2)[0])
		}
		logger.PrintError(&traceInput{name: cli.Name, message: message, stack: raw}, opts...)
	}
	return nil
}

func readTraces() ([]string, error) {
	if len(cli.Paths) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []string{string(data)}, nil
	}

	traces := make([]string, 0, len(cli.Paths))
	for _, path := range cli.Paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		traces = append(traces, string(data))
	}
	return traces, nil
}
