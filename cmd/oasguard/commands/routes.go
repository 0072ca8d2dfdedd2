package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/erraggy/oasguard/compiler"
	"github.com/erraggy/oasguard/httpvalidator"
	"github.com/erraggy/oasguard/schemaset"
)

// RoutesFlags contains flags for the routes command
type RoutesFlags struct {
	commonFlags
	Format string
}

// SetupRoutesFlags creates and configures a FlagSet for the routes command.
func SetupRoutesFlags() (*flag.FlagSet, *RoutesFlags) {
	fs := flag.NewFlagSet("routes", flag.ContinueOnError)
	flags := &RoutesFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasguard routes [flags]\n\n")
		Writef(fs.Output(), "List the endpoints compiled from an OpenAPI document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasguard routes --spec openapi.yaml\n")
		Writef(fs.Output(), "  oasguard routes --spec swagger.json --format json\n")
	}

	return fs, flags
}

// HandleRoutes executes the routes command
func HandleRoutes(args []string) error {
	return runRoutes(args, os.Stdout, os.Stderr)
}

func runRoutes(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupRoutesFlags()
	fs.SetOutput(stderr)
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("routes command takes no arguments")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	cfg, logger, err := flags.load(stderr)
	if err != nil {
		return err
	}
	doc, err := compiler.LoadFile(cfg.Spec)
	if err != nil {
		return err
	}
	set, err := compiler.Compile(doc, compiler.Options{
		BuildRequests: true,
		Logger:        httpvalidator.NewSlogAdapter(logger),
	})
	if err != nil {
		return err
	}

	endpoints := set.Endpoints()
	if flags.Format != FormatText {
		return OutputStructured(stdout, endpoints, flags.Format)
	}
	writeRoutesText(stdout, endpoints)
	return nil
}

func writeRoutesText(w io.Writer, endpoints []schemaset.EndpointInfo) {
	for _, ep := range endpoints {
		var checks []string
		if ep.HasParameters {
			checks = append(checks, "params")
		}
		if ep.HasBody {
			checks = append(checks, "body")
		}
		if len(checks) == 0 {
			checks = append(checks, "-")
		}
		Writef(w, "%-7s %-30s %-12s %s\n", strings.ToUpper(ep.Method), ep.Template, strings.Join(checks, ","), ep.OperationID)
	}
	Writef(w, "\n%d endpoint(s)\n", len(endpoints))
}
