// Command taupe extracts the URLs from a personal Twitter archive
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"taupe/internal/core/archive"
	"taupe/internal/core/projection"
	"taupe/internal/core/version"
	"taupe/internal/platform/config"
	perr "taupe/internal/platform/errors"
	"taupe/internal/platform/logger"
	dom "taupe/internal/services/extract/domain"
	extractsvc "taupe/internal/services/extract/service"

	"github.com/google/uuid"
)

const usageText = `usage: taupe [-c|-canonical-urls] [-e|-extract MODE] [-o|-output FILE]
             [-config FILE] [-debug DEST] [-V|-version] [ARCHIVE | -]

Taupe: extract the URLs from your personal Twitter archive.

ARCHIVE is the ZIP file downloaded from Twitter. When it is omitted or "-",
the archive is read from standard input.

Modes: %s (default %s)

Options:
  -c, -canonical-urls   use "twitter" as the account in every URL
  -e, -extract MODE     what to extract
  -o, -output FILE      write the output to FILE (default: stdout)
  -config FILE          read defaults from a YAML settings file
  -debug DEST           write a debug trace to DEST ("-" for the console)
  -V, -version          print program version info and exit
`

func main() {
	// broken pipes surface as EPIPE write errors instead of killing the process
	signal.Ignore(syscall.SIGPIPE)
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintf(w, usageText, strings.Join(projection.Names(), ", "), projection.Default)
}

// run is main without the process exit, returning the exit code
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 1 && args[0] == "help" {
		usage(stdout)
		return 0
	}

	var o options
	flags := flag.NewFlagSet("taupe", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.BoolVar(&o.canonical, "c", false, "")
	flags.BoolVar(&o.canonical, "canonical-urls", false, "")
	flags.StringVar(&o.extract, "e", projection.Default.String(), "")
	flags.StringVar(&o.extract, "extract", projection.Default.String(), "")
	flags.StringVar(&o.output, "o", "-", "")
	flags.StringVar(&o.output, "output", "-", "")
	flags.StringVar(&o.config, "config", "", "")
	flags.StringVar(&o.debug, "debug", "", "")
	flags.BoolVar(&o.version, "V", false, "")
	flags.BoolVar(&o.version, "version", false, "")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(stdout)
			return 0
		}
		return fail(stderr, perr.InvalidArgf("%v", err))
	}
	if o.version {
		_ = version.Print(stdout, version.Info())
		return 0
	}
	switch flags.NArg() {
	case 0:
		o.archive = "-"
	case 1:
		o.archive = flags.Arg(0)
	default:
		return fail(stderr, perr.InvalidArgf("expected one archive, got %d arguments", flags.NArg()))
	}

	cfg := config.New().Prefix("TAUPE_")
	s, err := config.LoadYAML[settings](settingsPath(o, cfg))
	if err != nil {
		return fail(stderr, err)
	}
	o = merge(o, s, visited(flags))

	closeLog, err := initLogging(o.debug, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer closeLog()

	log := logger.Get()
	log.Debug().Strs("args", args).Msg("starting")

	code := exitFor(stderr, execute(o, stdin, stdout))
	log.Debug().Int("exit_code", code).Msg("exiting")
	return code
}

// execute validates the invocation, runs the extraction and writes the lines
func execute(o options, stdin io.Reader, stdout io.Writer) error {
	log := logger.Get()

	mode, err := projection.ParseMode(o.extract)
	if err != nil {
		return err
	}

	a, err := openArchive(o.archive, stdin)
	if err != nil {
		return err
	}
	defer a.Close()

	out, closeOut, err := openOutput(o.output, stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Debug().Str("archive", a.Source()).Str("mode", mode.String()).Bool("canonical", o.canonical).Msg("extracting")
	res, err := extractsvc.New(dom.Options{Mode: mode, Canonical: o.canonical}, nil).Run(ctx, a)
	if err != nil {
		return err
	}

	log.Debug().Str("output", o.output).Int("lines", len(res.Lines)).Msg("writing output")
	if err := extractsvc.WriteLines(out, res.Lines); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			log.Debug().Msg("broken pipe")
			return nil
		}
		return err
	}
	return nil
}

type statter interface {
	Stat() (fs.FileInfo, error)
}

// openArchive opens path, or buffers stdin when path is "-"
func openArchive(path string, stdin io.Reader) (*archive.Archive, error) {
	if path == "-" {
		if st, ok := stdin.(statter); ok {
			if fi, err := st.Stat(); err == nil && fi.Mode()&fs.ModeCharDevice != 0 {
				return nil, perr.InvalidArgf("need archive as argument or via pipe/redirection")
			}
		}
		logger.Get().Debug().Msg("reading archive from stdin")
		return archive.ReadAll(stdin)
	}

	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, perr.InvalidArgf("path does not appear to exist: %s", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeFile, "cannot access %s", path)
	}
	if !fi.Mode().IsRegular() {
		return nil, perr.InvalidArgf("path is not a file: %s", path)
	}
	return archive.OpenFile(path)
}

// openOutput returns stdout for "-", otherwise creates path
func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, perr.Wrapf(err, perr.ErrorCodeFile, "unable to write to destination %s", path)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			logger.Get().Error().Err(err).Str("output", path).Msg("close output")
		}
	}, nil
}

// initLogging sets up the run logger. Without dest only warnings reach stderr;
// with dest the debug trace goes to that file, or stderr for "-"
func initLogging(dest string, stderr io.Writer) (func(), error) {
	opt := logger.Options{
		Level:        "warn",
		Format:       "console",
		Service:      version.Name,
		Writer:       stderr,
		StaticFields: map[string]string{"run_id": uuid.NewString()},
	}
	closer := func() {}
	switch dest {
	case "":
	case "-":
		opt.Level = "debug"
	default:
		f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeFile, "open debug log %s", dest)
		}
		opt.Level = "debug"
		opt.Writer = f
		closer = func() { _ = f.Close() }
	}
	logger.Init(opt)
	return closer, nil
}

// exitFor reports err on stderr and maps it to an exit code
func exitFor(stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	return fail(stderr, err)
}

func fail(stderr io.Writer, err error) int {
	code := perr.ExitCode(err)
	if perr.CodeOf(err) == perr.ErrorCodeUnknown {
		logger.Get().Debug().AnErr("cause", perr.Root(err)).Msg("unexpected failure")
		bi := version.Info()
		_, _ = fmt.Fprintf(stderr,
			"Oh no! Taupe encountered an error. Please consider reporting this to the developer. "+
				"For information about how, please see the project page:\n    %s\n"+
				"You are running %s version %s and the error was:\n    %q\n",
			bi.URL, bi.Service, bi.Version, err.Error())
		return code
	}
	_, _ = fmt.Fprintf(stderr, "taupe: %v\n", err)
	return code
}
