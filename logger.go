package errlog

import (
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the output renderer.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
)

// Settings configure a Logger at construction time and are not mutated
// afterwards. The zero value is usable: pretty output with default code
// frame width, stdout/stderr sinks.
type Settings struct {
	Format         Format `yaml:"format"`
	CodeFrameLines int    `yaml:"codeFrameLines"`
	NoColor        bool   `yaml:"noColor"`

	// Output and ErrOutput are the sinks for the standard and error
	// severities. Error records always go to ErrOutput unless overridden
	// per call with WithSink.
	Output    io.StringWriter `yaml:"-"`
	ErrOutput io.StringWriter `yaml:"-"`
}

// ParseSettings loads the serializable subset of Settings from YAML.
func ParseSettings(data []byte) (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, Wrap(err, "parse settings")
	}
	if s.Format != "" && s.Format != FormatPretty && s.Format != FormatJSON {
		return Settings{}, New("unknown output format", "format", string(s.Format))
	}
	return s, nil
}

// Logger renders structured error records to its configured sinks.
type Logger struct {
	settings Settings
}

// NewLogger returns a Logger with defaults applied to the zero fields of
// settings.
func NewLogger(settings Settings) *Logger {
	if settings.Format == "" {
		settings.Format = FormatPretty
	}
	if settings.CodeFrameLines < 1 {
		settings.CodeFrameLines = defaultCodeFrameLines
	}
	if settings.Output == nil {
		settings.Output = os.Stdout
	}
	if settings.ErrOutput == nil {
		settings.ErrOutput = os.Stderr
	}
	return &Logger{settings: settings}
}

func (l *Logger) renderer(cfg *errorConfig) Renderer {
	if l.settings.Format == FormatJSON {
		return &jsonRenderer{}
	}
	return &prettyRenderer{
		showStack: cfg.stackTrace,
		showRaw:   cfg.rawStack,
		noColor:   l.settings.NoColor,
	}
}

// Print writes one line of non-error output to the standard sink. It is
// the minimal counterpart of PrintError for the second severity; all
// structure lives on the error path.
func (l *Logger) Print(s string) {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, _ = l.settings.Output.WriteString(s)
}

// write sends one rendered record to the chosen sink in a single write.
func (l *Logger) write(s string, sink io.StringWriter) {
	if sink == nil {
		sink = l.settings.ErrOutput
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, _ = sink.WriteString(s)
}
