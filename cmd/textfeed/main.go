package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/mkondo/textfeed"
	"github.com/mkondo/textfeed/sink/capture"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
	switch os.Args[1] {
	case "transcode":
		transcodeCmd(os.Args[2:], logger)
	case "detect":
		detectCmd(os.Args[2:], logger)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "textfeed CLI\n\nUsage:\n  textfeed transcode [-charset label] [-config file.yaml] [-report text|json] [file]\n  textfeed detect [-charset label] file...\n\nNotes:\n  - transcode reads the file (stdin when omitted) and writes UTF-8 to stdout.\n  - detect reports the encoding each file would be decoded with.")
}

// config mirrors the transcode flags for callers that prefer a YAML file.
// Flags win over the file.
type config struct {
	Charset string `yaml:"charset"`
	Report  string `yaml:"report"`
}

func loadConfig(path string) (config, error) {
	var cfg config
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func transcodeCmd(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("transcode", flag.ExitOnError)
	var label string
	var configPath string
	var report string
	fs.StringVar(&label, "charset", "", "transport-layer charset label, e.g. windows-1252")
	fs.StringVar(&configPath, "config", "", "YAML config file")
	fs.StringVar(&report, "report", "text", "diagnostics format: text or json")
	_ = fs.Parse(args)

	if configPath != "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			fatalf(logger, "config: %v", err)
		}
		if label == "" {
			label = cfg.Charset
		}
		if cfg.Report != "" && report == "text" {
			report = cfg.Report
		}
	}

	in := os.Stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			fatalf(logger, "open: %v", err)
		}
		defer f.Close()
		in = f
	}

	var opts []textfeed.BytesOpt
	if label != "" {
		e := textfeed.EncodingByLabel(label)
		if e == nil {
			logger.Warn("unknown charset label, falling back to detection", "label", label)
		} else {
			opts = append(opts, textfeed.BytesOpt{Transport: e})
		}
	}

	res, err := textfeed.ReadFrom[capture.Result](capture.New(), in, opts...)
	if _, werr := os.Stdout.WriteString(res.Text); werr != nil {
		fatalf(logger, "write: %v", werr)
	}

	switch report {
	case "json":
		out, merr := json.Marshal(struct {
			Count  int             `json:"count"`
			Issues textfeed.Issues `json:"issues"`
		}{Count: len(res.Issues), Issues: res.Issues})
		if merr != nil {
			fatalf(logger, "report: %v", merr)
		}
		fmt.Fprintln(os.Stderr, string(out))
	default:
		for _, iss := range res.Issues {
			logger.Warn(iss.Message, "code", iss.Code, "offset", iss.Offset)
		}
	}

	if err != nil {
		fatalf(logger, "read: %v", err)
	}
}

func detectCmd(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	var label string
	fs.StringVar(&label, "charset", "", "transport-layer charset label, e.g. windows-1252")
	_ = fs.Parse(args)
	files := fs.Args()
	if len(files) == 0 {
		fs.Usage()
		os.Exit(2)
	}

	hint := textfeed.EncodingByLabel(label)
	if label != "" && hint == nil {
		logger.Warn("unknown charset label, ignoring", "label", label)
	}

	names := make([]string, len(files))
	var g errgroup.Group
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			prefix, err := readPrefix(path, textfeed.PrescanBytes)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			names[i] = textfeed.EncodingName(textfeed.DetectEncoding(prefix, hint))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fatalf(logger, "detect: %v", err)
	}
	for i, path := range files {
		fmt.Printf("%s\t%s\n", path, names[i])
	}
}

func readPrefix(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, n)
	m, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:m], nil
}

func fatalf(logger *slog.Logger, format string, args ...any) {
	logger.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
