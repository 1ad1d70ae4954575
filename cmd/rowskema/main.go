package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	j "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/catalog"
	"github.com/reoring/rowskema/i18n"
	"github.com/reoring/rowskema/wirejson"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch sub := os.Args[1]; sub {
	case "describe":
		err = describeCmd(os.Stdout, os.Args[2:])
	case "check":
		err = checkCmd(os.Stdout, os.Args[2:])
	case "sample":
		err = sampleCmd(os.Stdout, os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		if !errors.Is(err, errIssues) {
			fmt.Fprintf(os.Stderr, "rowskema: %v\n", err)
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `rowskema CLI

Usage:
  rowskema describe [-domain d] [-format yaml|json|jsonschema]
  rowskema check -domain d [-schema s] [-v] fixture.json...
  rowskema sample -domain d [-schema s] [-n N]

Domains: `+strings.Join(catalog.Names(), ", ")+`

Every subcommand accepts -config (default ./rowskema.toml when present).`)
}

// setup loads the config and installs logger, language and color settings.
func setup(configPath string, explicit bool) (cliConfig, error) {
	cfg, err := loadConfig(configPath, explicit)
	if err != nil {
		return cliConfig{}, err
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339, NoColor: !cfg.Color}
	rowskema.SetLogger(zerolog.New(out).Level(cfg.LogLevel).With().Timestamp().Str("app", "rowskema").Logger())
	i18n.SetLanguage(cfg.Lang)
	color.NoColor = color.NoColor || !cfg.Color
	return cfg, nil
}

type configFlag struct {
	path string
	set  bool
}

func (c *configFlag) String() string { return c.path }
func (c *configFlag) Set(v string) error {
	c.path, c.set = v, true
	return nil
}

func newFlagSet(name string) (*flag.FlagSet, *configFlag) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cf := &configFlag{path: defaultConfigPath}
	fs.Var(cf, "config", "TOML config file")
	return fs, cf
}

func describeCmd(w io.Writer, args []string) error {
	fs, cf := newFlagSet("describe")
	var domain, format string
	fs.StringVar(&domain, "domain", "", "domain to describe (default: all)")
	fs.StringVar(&format, "format", "", "output format: yaml, json or jsonschema")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := setup(cf.path, cf.set)
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.Format
	}
	if err := validFormat(format); err != nil {
		return err
	}
	var names []string
	if domain != "" {
		names = []string{domain}
	}

	var data []byte
	switch format {
	case "jsonschema":
		schemas, err := catalog.JSONSchemas(names...)
		if err != nil {
			return fmt.Errorf("describe: %w", err)
		}
		data, err = j.MarshalIndent(schemas, "", "  ")
		if err != nil {
			return fmt.Errorf("describe: %w", err)
		}
	default:
		doc, err := catalog.Describe(names...)
		if err != nil {
			return fmt.Errorf("describe: %w", err)
		}
		if format == "json" {
			data, err = doc.JSON()
		} else {
			data, err = doc.YAML()
		}
		if err != nil {
			return fmt.Errorf("describe: %w", err)
		}
	}
	_, err = w.Write(data)
	if err == nil && len(data) > 0 && data[len(data)-1] != '\n' {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

// fileReport is the outcome of checking one fixture.
type fileReport struct {
	path    string
	rows    int
	decoded any
	count   int
	missing []string
	issues  rowskema.Issues
}

var errIssues = errors.New("fixtures have cell issues")

func checkCmd(w io.Writer, args []string) error {
	fs, cf := newFlagSet("check")
	var domain, schemaName string
	var verbose bool
	fs.StringVar(&domain, "domain", "", "domain the fixtures belong to")
	fs.StringVar(&schemaName, "schema", "", "schema within the domain (default: first)")
	fs.BoolVar(&verbose, "v", false, "dump decoded values")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if domain == "" || fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("check: -domain and at least one fixture are required")
	}
	if _, err := setup(cf.path, cf.set); err != nil {
		return err
	}
	s, err := catalog.Schema(domain, schemaName)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	d, _ := catalog.Lookup(domain)
	decode := d.Decoders[s.Name()]

	paths := fs.Args()
	reports := make([]fileReport, len(paths))
	var g errgroup.Group
	for i, p := range paths {
		g.Go(func() error {
			rep, err := checkFile(p, s, decode)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("check: %w", err)
	}

	failed := printReports(w, reports, verbose)
	if failed {
		return errIssues
	}
	return nil
}

func checkFile(path string, s *rowskema.Schema, decode catalog.Decoder) (fileReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileReport{}, err
	}
	t, err := wirejson.Unmarshal(data, s)
	if err != nil {
		return fileReport{}, fmt.Errorf("%s: %w", path, err)
	}
	rep := fileReport{path: path, rows: t.Len()}
	collect := func(it rowskema.Issue) { rep.issues = append(rep.issues, it) }
	err = rowskema.WithColumnsOpts(t, s, rowskema.ScopeOpt{Collect: collect}, func(sc *rowskema.Scope) error {
		rep.missing = sc.Missing()
		fields := s.Fields()
		for sc.Next() {
			for _, f := range fields {
				sc.Any(f)
			}
		}
		return nil
	})
	if err != nil {
		return fileReport{}, fmt.Errorf("%s: %w", path, err)
	}
	if decode != nil {
		out, err := decode(t)
		if err != nil {
			return fileReport{}, fmt.Errorf("%s: %w", path, err)
		}
		rep.decoded = out
		rep.count = lenOf(out)
	}
	return rep, nil
}

func lenOf(v any) int {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return 0
	}
	return rv.Len()
}

func printReports(w io.Writer, reports []fileReport, verbose bool) bool {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	failed := false
	for _, rep := range reports {
		status := ok("ok")
		if len(rep.issues) > 0 {
			status = bad("FAIL")
			failed = true
		}
		fmt.Fprintf(w, "%s %s: %d rows, %d decoded\n", status, rep.path, rep.rows, rep.count)
		if len(rep.missing) > 0 {
			fmt.Fprintf(w, "  %s %s\n", dim("missing columns:"), strings.Join(rep.missing, ", "))
		}
		for _, it := range rep.issues {
			fmt.Fprintf(w, "  %s row %d column %s: %s\n", bad(it.Code), it.Row, it.Column, it.Message)
		}
		if verbose && rep.decoded != nil {
			cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
			cfg.Fdump(w, rep.decoded)
		}
	}
	return failed
}

func sampleCmd(w io.Writer, args []string) error {
	fs, cf := newFlagSet("sample")
	var domain, schemaName string
	var n int
	fs.StringVar(&domain, "domain", "", "domain to sample")
	fs.StringVar(&schemaName, "schema", "", "schema within the domain (default: first)")
	fs.IntVar(&n, "n", 3, "number of rows")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if domain == "" {
		fs.Usage()
		return fmt.Errorf("sample: -domain is required")
	}
	if _, err := setup(cf.path, cf.set); err != nil {
		return err
	}
	s, err := catalog.Schema(domain, schemaName)
	if err != nil {
		return fmt.Errorf("sample: %w", err)
	}
	t, err := sampleTable(s, n, time.Now())
	if err != nil {
		return fmt.Errorf("sample: %w", err)
	}
	data, err := wirejson.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("sample: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
