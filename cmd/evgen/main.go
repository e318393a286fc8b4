package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/alexhholmes/evgen/internal/analyzer"
	"github.com/alexhholmes/evgen/internal/codegen"
	"github.com/alexhholmes/evgen/internal/compiler"
	"github.com/alexhholmes/evgen/internal/config"
)

// overrides collects repeated -set flags
type overrides []string

func (o *overrides) String() string { return strings.Join(*o, ",") }

func (o *overrides) Set(v string) error {
	*o = append(*o, v)
	return nil
}

func main() {
	var (
		configPath = flag.String("config", config.DefaultFile, "configuration file")
		output     = flag.String("o", "", "output file, overrides the configured output")
		check      = flag.Bool("check", false, "report whether the output is up to date instead of writing it")
		layout     = flag.Bool("layout", false, "print the resolved layouts instead of generating")
		sets       overrides
	)
	flag.Var(&sets, "set", "configuration override key=value, repeatable")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [schema.yaml...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fatal(err)
	}
	if err := cfg.Set(sets); err != nil {
		fatal(err)
	}
	if *output != "" {
		cfg.Output = *output
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		fatal(err)
	}
	defer log.Sync()
	analyzer.SetLogger(log.Named("analyzer"))
	codegen.SetLogger(log.Named("codegen"))
	compiler.SetLogger(log.Named("compiler"))

	files := flag.Args()
	if len(files) == 0 {
		files = cfg.SchemaFiles()
	}
	if len(files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	res, err := compiler.Compile(cfg, files...)
	if err != nil {
		fatal(err)
	}

	if *layout {
		if err := compiler.WriteLayouts(os.Stdout, res.Layouts); err != nil {
			fatal(err)
		}
		return
	}

	path := cfg.OutputPath()
	if *output != "" {
		path = *output
	}

	if *check {
		diff, err := compiler.Check(path, res.Source)
		if err != nil {
			fatal(err)
		}
		if diff != "" {
			fmt.Print(diff)
			log.Warn("generated file is stale", zap.String("file", path))
			os.Exit(1)
		}
		return
	}

	written, err := compiler.Write(path, res.Source)
	if err != nil {
		fatal(err)
	}
	log.Info("output", zap.String("file", path), zap.Bool("written", written))
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(cfg.Level())
	zc.DisableStacktrace = true
	return zc.Build()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
