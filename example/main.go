package main

import (
	"log/slog"
	"os"

	"github.com/errlog-go/errlog"
)

func loadProfile(id string) error {
	// pretend the lookup failed
	return errlog.New("profile not found",
		"profileId", id,
		"region", "eu-west-1",
	)
}

func main() {

	/* Pretty output to stderr, something like:

	Error: profile not found
	stack:
	    at main.loadProfile (/home/user/errlog/example/main.go:12)
	    at main.main (/home/user/errlog/example/main.go:30)
	details:
	    profileId: p-1138
	    region: eu-west-1
	*/
	logger := errlog.NewLogger(errlog.Settings{})
	if err := loadProfile("p-1138"); err != nil {
		logger.PrintError(err,
			errlog.WithStackTrace(),
			errlog.WithCodeFrame(),
		)
	}

	/* The same record as a machine-readable line:

	{"argumentsArray":[{"name":"Error","message":"profile not found","stack":[...],"details":{"profileId":"p-1138","region":"eu-west-1"},"isError":true}]}
	*/
	jsonLogger := errlog.NewLogger(errlog.Settings{
		Format:    errlog.FormatJSON,
		ErrOutput: os.Stdout,
	})
	if err := loadProfile("p-1138"); err != nil {
		jsonLogger.PrintError(err)
	}

	// Errors created here also render as structured groups under slog.
	slog.SetDefault(
		slog.New(
			slog.NewJSONHandler(os.Stderr, nil),
		),
	)
	if err := loadProfile("p-1138"); err != nil {
		slog.Error("loading profile failed", slog.Any("error", err))
	}
}
