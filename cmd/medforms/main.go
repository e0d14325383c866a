package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/pedrohavay/medforms/datefield"
	"github.com/pedrohavay/medforms/forms"
	"github.com/pedrohavay/medforms/internal/config"
	"github.com/pedrohavay/medforms/internal/logger"
)

// Usage:
//   medforms replay [-in jsonl|yaml|msgpack] [-initial MM/DD/YYYY] < events
//   medforms submit -form prescription [-in ...] [-initial ...] < events
//   medforms parse 07/15/2025
//   medforms format 2025-07-15
//   medforms mask 0715
//   medforms forms
//   medforms convert -from yaml -to msgpack < in > out

var commands = []string{"replay", "submit", "parse", "format", "mask", "forms", "convert", "help"}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	catalog *forms.Catalog
	loc     *time.Location
	clock   func() time.Time
	logger  *zap.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var catalog *forms.Catalog
	if cfg.Catalog.Path != "" {
		if catalog, err = forms.NewCatalog(cfg.Catalog.Path); err != nil {
			fmt.Fprintf(os.Stderr, "loading catalog: %v\n", err)
			os.Exit(2)
		}
	} else {
		catalog = forms.Default()
	}

	a := &app{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		catalog: catalog,
		loc:     cfg.Clock.Location,
		clock:   time.Now,
		logger:  log,
	}
	code := a.run(os.Args[1:])
	_ = log.Sync()
	os.Exit(code)
}

func (a *app) run(args []string) int {
	if len(args) < 1 {
		a.usage()
		return 2
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "replay":
		return a.replay(rest)
	case "submit":
		return a.submit(rest)
	case "parse":
		return a.parse(rest)
	case "format":
		return a.format(rest)
	case "mask":
		return a.mask(rest)
	case "forms":
		return a.dumpForms()
	case "convert":
		return a.convert(rest)
	case "help", "-h", "--help":
		a.usage()
		return 0
	default:
		fmt.Fprintf(a.stderr, "unknown command: %s\n", cmd)
		if near, ok := forms.Closest(cmd, commands, 2); ok {
			fmt.Fprintf(a.stderr, "did you mean %q?\n", near)
		}
		a.usage()
		return 2
	}
}

func (a *app) usage() {
	fmt.Fprintf(a.stderr, "medforms commands: replay | submit | parse | format | mask | forms | convert\n")
}

var readers = map[string]func(io.Reader, func(datefield.Event) error) error{
	"jsonl":   datefield.ReadEventsJSONL,
	"yaml":    datefield.ReadEventsYAML,
	"msgpack": datefield.ReadEventsMsgpack,
}

var writers = map[string]func(io.Writer, []datefield.Event) error{
	"jsonl":   datefield.WriteEventsJSONL,
	"yaml":    datefield.WriteEventsYAML,
	"msgpack": datefield.WriteEventsMsgpack,
}

func (a *app) readEvents(format string) ([]datefield.Event, error) {
	read, ok := readers[format]
	if !ok {
		return nil, fmt.Errorf("unknown event format: %s", format)
	}
	return datefield.CollectEvents(read, a.stdin)
}

// parseInitial reads the -initial flag; empty means no pre-filled date.
func parseInitial(s string) (*datefield.CalendarDate, error) {
	if s == "" {
		return nil, nil
	}
	d, ok := datefield.ParseDate(s)
	if !ok {
		return nil, fmt.Errorf("invalid -initial date %q, want MM/DD/YYYY", s)
	}
	return &d, nil
}

func applyAll(f *datefield.Field, events []datefield.Event) error {
	for i, e := range events {
		if err := f.Apply(e); err != nil {
			return &datefield.ReplayError{Index: i, Event: e, Err: err}
		}
	}
	return nil
}

func (a *app) replay(args []string) int {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	in := fs.String("in", "jsonl", "event format: jsonl, yaml or msgpack")
	initial := fs.String("initial", "", "pre-filled date, MM/DD/YYYY")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	start, err := parseInitial(*initial)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 2
	}
	events, err := a.readEvents(*in)
	if err != nil {
		fmt.Fprintf(a.stderr, "error reading events: %v\n", err)
		return 1
	}

	opts := []datefield.Option{
		datefield.WithClock(a.clock),
		datefield.WithLocation(a.loc),
		datefield.WithLogger(a.logger),
	}
	if start != nil {
		opts = append(opts, datefield.WithInitial(*start))
	}
	f := datefield.New(opts...)
	code := 0
	if err := applyAll(f, events); err != nil {
		fmt.Fprintln(a.stderr, err)
		code = 1
	}
	a.writeJSON(f.Snapshot().View())
	return code
}

func (a *app) submit(args []string) int {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	name := fs.String("form", "", "form name from the catalog")
	in := fs.String("in", "jsonl", "event format: jsonl, yaml or msgpack")
	initial := fs.String("initial", "", "date of the record being edited, MM/DD/YYYY")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	spec := a.catalog.Get(*name)
	if spec == nil {
		fmt.Fprintf(a.stderr, "unknown form: %q\n", *name)
		if near, ok := a.catalog.Suggest(*name); ok {
			fmt.Fprintf(a.stderr, "did you mean %q?\n", near)
		}
		return 2
	}
	start, err := parseInitial(*initial)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 2
	}
	events, err := a.readEvents(*in)
	if err != nil {
		fmt.Fprintf(a.stderr, "error reading events: %v\n", err)
		return 1
	}

	opts := []forms.SessionOption{
		forms.SessionClock(a.clock),
		forms.SessionLocation(a.loc),
		forms.SessionLogger(a.logger),
	}
	if start != nil {
		opts = append(opts, forms.EditingExisting(*start))
	}
	s := forms.NewSession(spec, opts...)
	if err := applyAll(s.Field, events); err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	sub, err := s.Submit()
	if err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(a.stderr, "Error: %s\n", verr.Message)
			return 1
		}
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	a.writeJSON(sub)
	return 0
}

func (a *app) parse(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(a.stderr, "usage: medforms parse MM/DD/YYYY")
		return 2
	}
	d, ok := datefield.ParseDate(args[0])
	if !ok {
		fmt.Fprintf(a.stderr, "invalid date: %s\n", args[0])
		return 1
	}
	fmt.Fprintln(a.stdout, d.ISO())
	return 0
}

func (a *app) format(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(a.stderr, "usage: medforms format YYYY-MM-DD")
		return 2
	}
	var d datefield.CalendarDate
	if err := d.UnmarshalText([]byte(args[0])); err != nil || d.IsZero() {
		fmt.Fprintf(a.stderr, "invalid date: %s\n", args[0])
		return 1
	}
	fmt.Fprintln(a.stdout, datefield.FormatDate(d))
	return 0
}

func (a *app) mask(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(a.stderr, "usage: medforms mask TEXT")
		return 2
	}
	fmt.Fprintln(a.stdout, datefield.Mask(args[0]))
	return 0
}

func (a *app) dumpForms() int {
	out := make([]*forms.FormSpec, 0, len(a.catalog.Forms))
	for _, name := range a.catalog.Names() {
		out = append(out, a.catalog.Get(name))
	}
	a.writeJSON(out)
	return 0
}

func (a *app) convert(args []string) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	from := fs.String("from", "jsonl", "input format: jsonl, yaml or msgpack")
	to := fs.String("to", "msgpack", "output format: jsonl, yaml or msgpack")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	write, ok := writers[*to]
	if !ok {
		fmt.Fprintf(a.stderr, "unknown event format: %s\n", *to)
		return 2
	}
	events, err := a.readEvents(*from)
	if err != nil {
		fmt.Fprintf(a.stderr, "error reading events: %v\n", err)
		return 1
	}
	if err := write(a.stdout, events); err != nil {
		fmt.Fprintf(a.stderr, "error writing events: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) writeJSON(v any) {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
