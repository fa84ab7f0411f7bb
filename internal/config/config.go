// Package config resolves one invocation's settings from flags, files,
// standard input, and the environment. Resolution happens exactly once, before
// any network call; the resulting Config is immutable for the rest of the run.
package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"gabi/cli/internal/errors"
)

// Source identifies where the query text comes from. Exactly one source is
// selected per invocation.
type Source int

const (
	// SourceNone means no query was provided; the run is a no-op after the probe.
	SourceNone Source = iota
	// SourceInline takes the query text directly from the --query flag.
	SourceInline
	// SourceFile reads the query from the file named by --query-file.
	SourceFile
	// SourceStdin reads the query from standard input ("--query -").
	SourceStdin
)

// Options carries raw flag values before resolution.
type Options struct {
	URL       string
	Token     string
	Query     string
	QueryFile string
	Output    string
	Separator string
	RawJSON   bool
	PingOnly  bool
	Debug     bool
	Timeout   time.Duration
}

// Config is one invocation's fully resolved settings.
type Config struct {
	URL       string
	Token     string
	Query     string
	Output    string
	Separator string
	CSV       bool
	PingOnly  bool
	Debug     bool
	Timeout   time.Duration
}

// QuerySource picks the single query source for the given options. A query
// file wins over the inline flag, and the literal "-" selects standard input.
func QuerySource(opts Options) (Source, string) {
	switch {
	case opts.QueryFile != "":
		return SourceFile, opts.QueryFile
	case opts.Query == "-":
		return SourceStdin, ""
	case opts.Query != "":
		return SourceInline, opts.Query
	default:
		return SourceNone, ""
	}
}

// Resolve produces a Config from flag values, environment fallback, and the
// selected query source. stdin is only read when the source is SourceStdin.
// A missing URL or token is a configuration error; a missing query is not.
func Resolve(opts Options, stdin io.Reader) (Config, error) {
	env := viper.New()
	_ = env.BindEnv("url", "GABI_URL")
	_ = env.BindEnv("token", "OCP_CONSOLE_TOKEN")

	url := strings.TrimSpace(opts.URL)
	if url == "" {
		url = strings.TrimSpace(env.GetString("url"))
	}
	token := strings.TrimSpace(opts.Token)
	if token == "" {
		token = strings.TrimSpace(env.GetString("token"))
	}

	if url == "" || token == "" {
		return Config{}, errors.New(errors.ConfigInvalid,
			"service URL and token are required (use --url/--token or set GABI_URL/OCP_CONSOLE_TOKEN)")
	}

	src, arg := QuerySource(opts)
	query, err := readQuery(src, arg, stdin)
	if err != nil {
		return Config{}, err
	}

	sep := opts.Separator
	if sep == "" {
		sep = "\t"
	}

	return Config{
		URL:       strings.TrimRight(url, "/"),
		Token:     token,
		Query:     query,
		Output:    opts.Output,
		Separator: sep,
		CSV:       !opts.RawJSON,
		PingOnly:  opts.PingOnly,
		Debug:     opts.Debug,
		Timeout:   opts.Timeout,
	}, nil
}

// readQuery performs the one explicit acquisition step for the query text.
// File and stdin contents are taken whole and decoded as UTF-8 text here, at
// the point of reading.
func readQuery(src Source, arg string, stdin io.Reader) (string, error) {
	switch src {
	case SourceFile:
		b, err := os.ReadFile(arg)
		if err != nil {
			return "", errors.Wrap(errors.IOFailed, "read query file", err)
		}
		return string(b), nil
	case SourceStdin:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(errors.IOFailed, "read query from stdin", err)
		}
		return string(b), nil
	case SourceInline:
		return arg, nil
	default:
		return "", nil
	}
}
