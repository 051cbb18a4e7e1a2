// Command owlreason is the CLI surface of the reasoner: load an OBO or
// OWL/RDF-XML ontology, then check consistency, classify it, or run one
// ad hoc query against it.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/anusornc/owl2-reasoner-sub000/internal/adapters/obo"
	"github.com/anusornc/owl2-reasoner-sub000/internal/adapters/owlxml"
	"github.com/anusornc/owl2-reasoner-sub000/internal/adapters/report"
	"github.com/anusornc/owl2-reasoner-sub000/internal/config"
	"github.com/anusornc/owl2-reasoner-sub000/internal/iri"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/reasoner"
)

const (
	exitOK         = 0
	exitFailed     = 1
	exitInvocation = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("owlreason", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	consistentFile := fs.String("consistent", "", "check consistency of the ontology at FILE")
	classifyFile := fs.String("classify", "", "classify the ontology at FILE")
	queryFile := fs.String("query-file", "", "ontology FILE for -query")
	query := fs.String("query", "", "run QUERY against -query-file (see usage)")
	format := fs.String("format", "auto", "ontology format: auto, obo, owl")
	configPath := fs.String("config", "", "reasoner tuning config (.toml or .yaml)")
	pretty := fs.Bool("pretty", false, "pretty-print JSON output")

	if err := fs.Parse(args); err != nil {
		return exitInvocation
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvocation
	}
	logger := newLogger(cfg.LogLevel)
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "logger sync: %v\n", err)
		}
	}()

	switch {
	case *consistentFile != "":
		return runConsistent(*consistentFile, *format, cfg, logger, *pretty)
	case *classifyFile != "":
		return runClassify(*classifyFile, *format, cfg, logger, *pretty)
	case *query != "" && *queryFile != "":
		return runQuery(*queryFile, *format, *query, cfg, logger, *pretty)
	default:
		usage(fs)
		return exitInvocation
	}
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "Usage: owlreason -consistent FILE | -classify FILE | -query QUERY -query-file FILE")
	fmt.Fprintln(os.Stderr, "  QUERY forms: consistent | satisfiable:IRI | subclassof:SUB,SUP |")
	fmt.Fprintln(os.Stderr, "               equivalent:IRI | instances:IRI | types:IRI")
	fs.PrintDefaults()
}

func newLogger(level string) *zap.Logger {
	var zl zapcore.Level
	if err := zl.UnmarshalText([]byte(level)); err != nil {
		zl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zl)
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func loadOntology(path, format string) (*ontology.Builder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	b := ontology.NewBuilder(iri.New(iri.DefaultConfig()))

	switch detectFormat(path, format) {
	case "obo":
		if err := obo.Parse(f, b); err != nil {
			return nil, err
		}
	case "owl":
		if _, err := owlxml.Parse(f, b); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("cannot detect format for %q; pass -format obo or -format owl", path)
	}
	return b, nil
}

func detectFormat(path, explicit string) string {
	if explicit != "auto" {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obo":
		return "obo"
	case ".owl", ".xml", ".rdf":
		return "owl"
	}
	return ""
}

func runConsistent(path, format string, cfg config.ReasoningConfig, logger *zap.Logger, pretty bool) int {
	start := time.Now()
	b, err := loadOntology(path, format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvocation
	}
	logger.Info("loaded ontology", zap.String("path", path), zap.Duration("elapsed", time.Since(start)))

	r := reasoner.New(b.Onto, reasoner.WithConfig(cfg), reasoner.WithLogger(logger))
	ok, err := r.IsConsistent()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvocation
	}

	q := report.QueryResult{Operation: "consistent", Bool: &ok}
	if err := report.WriteQueryResultJSON(q, os.Stdout, pretty); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvocation
	}
	if !ok {
		return exitFailed
	}
	return exitOK
}

func runClassify(path, format string, cfg config.ReasoningConfig, logger *zap.Logger, pretty bool) int {
	b, err := loadOntology(path, format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvocation
	}

	r := reasoner.New(b.Onto, reasoner.WithConfig(cfg), reasoner.WithLogger(logger))
	h, err := r.Classify()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvocation
	}

	if err := report.WriteHierarchyJSON(h, os.Stdout, pretty); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvocation
	}
	for _, unsat := range h.Unsatisfiable {
		if unsat {
			return exitFailed
		}
	}
	return exitOK
}

func runQuery(path, format, query string, cfg config.ReasoningConfig, logger *zap.Logger, pretty bool) int {
	b, err := loadOntology(path, format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvocation
	}
	r := reasoner.New(b.Onto, reasoner.WithConfig(cfg), reasoner.WithLogger(logger))

	op, arg, _ := strings.Cut(query, ":")
	result, exitCode, err := dispatchQuery(r, op, arg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvocation
	}
	result.Args = splitArgs(arg)
	if err := report.WriteQueryResultJSON(result, os.Stdout, pretty); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvocation
	}
	return exitCode
}

func splitArgs(arg string) []string {
	if arg == "" {
		return nil
	}
	return strings.Split(arg, ",")
}

func dispatchQuery(r *reasoner.Reasoner, op, arg string) (report.QueryResult, int, error) {
	switch op {
	case "consistent":
		ok, err := r.IsConsistent()
		return boolResult(op, ok), exitFor(ok, err), err
	case "satisfiable":
		ok, err := r.IsSatisfiable(arg)
		return boolResult(op, ok), exitFor(ok, err), err
	case "subclassof":
		sub, sup, found := strings.Cut(arg, ",")
		if !found {
			return report.QueryResult{}, exitInvocation, fmt.Errorf("subclassof query needs SUB,SUP")
		}
		ok, err := r.IsSubClassOf(sub, sup)
		return boolResult(op, ok), exitFor(ok, err), err
	case "equivalent":
		members, err := r.EquivalentClasses(arg)
		return stringsResult(op, members), exitFor(len(members) > 0, err), err
	case "instances":
		members, err := r.InstancesOf(arg)
		return stringsResult(op, members), exitFor(true, err), err
	case "types":
		members, err := r.TypesOf(arg)
		return stringsResult(op, members), exitFor(true, err), err
	default:
		return report.QueryResult{}, exitInvocation, fmt.Errorf("unrecognized query %q", op)
	}
}

func boolResult(op string, ok bool) report.QueryResult {
	return report.QueryResult{Operation: op, Bool: &ok}
}

func stringsResult(op string, values []string) report.QueryResult {
	return report.QueryResult{Operation: op, Strings: values}
}

func exitFor(ok bool, err error) int {
	if err != nil {
		return exitInvocation
	}
	if !ok {
		return exitFailed
	}
	return exitOK
}
