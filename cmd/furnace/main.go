// furnace migrates legacy level material metadata to the target schema.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/Simouie/Project-Furnace/internal/config"
	"github.com/Simouie/Project-Furnace/internal/document"
	"github.com/Simouie/Project-Furnace/internal/logger"
	"github.com/Simouie/Project-Furnace/internal/rules"
	"github.com/Simouie/Project-Furnace/internal/transfer"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]
	logger.Debug("Starting",
		zap.String("command", command),
		zap.String("config", config.ConfigPath()),
		zap.String("lightmap_policy", cfg.Rules.LightmapPolicy),
		zap.String("name_precedence", cfg.Rules.NamePrecedence))

	var code int
	switch command {
	case "run":
		code = cmdRun(cfg, args)
	case "reset":
		code = cmdReset(cfg, args)
	case "classify":
		code = cmdClassify(cfg, args)
	case "plan":
		code = cmdPlan(cfg, args)
	case "parse":
		code = cmdParse(cfg, args)
	case "tables":
		code = cmdTables(cfg)
	case "init-config":
		code = cmdInitConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		code = 1
	}
	logger.Sync()
	os.Exit(code)
}

func printUsage() {
	fmt.Println(`furnace - legacy level material migration

Usage:
  furnace [global options] <command> [options]

Global options:
  -config <file>      Config file (default ./config.yaml, then user config dir)
  -debug              Debug logging
  -policy <name>      Lightmap policy: bucket, round
  -precedence <name>  Name symbol precedence: prefix, suffix
  -tables <file>      YAML flag tables replacing the built-in ones
  -log <file>         Also log to a rotating file

Commands:
  run <scene.yaml> [-o out.yaml]   Transfer properties and write the scene
  reset <scene.yaml> [-o out.yaml] Clear the face properties of every mesh
  classify <scene.yaml>            Show the category of every material
  plan <scene.yaml> [-dump]        Show how each object would be split
  parse [-material] <name>         Show the effects of a name's symbols
  tables                           Print the active flag tables as YAML
  init-config [path]               Write the active config as YAML

Examples:
  furnace run level.yaml -o level.nwo.yaml
  furnace -policy round plan level.yaml
  furnace parse -material "%wall!"`)
}

func newDriver(cfg *config.Config, doc document.Document) (*transfer.Driver, error) {
	opts, err := cfg.Options(logger.Named("transfer"))
	if err != nil {
		return nil, err
	}
	return transfer.New(doc, opts)
}

func loadScene(cfg *config.Config, fs *flag.FlagSet, usage string) (*document.Memory, *transfer.Driver, bool) {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: furnace "+usage)
		return nil, nil, false
	}
	doc, err := document.LoadScene(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, nil, false
	}
	d, err := newDriver(cfg, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, nil, false
	}
	return doc, d, true
}

func cmdRun(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	out := fs.String("o", "", "Output scene (default: stdout)")
	quiet := fs.Bool("q", false, "Only print warnings and errors")
	fs.Parse(args)

	doc, d, ok := loadScene(cfg, fs, "run <scene.yaml> [-o out.yaml]")
	if !ok {
		return 1
	}

	report := d.Run()
	if n := len(report.Warnings()); n > 0 {
		logger.Warn("Run finished with warnings", zap.Int("warnings", n))
	}
	for _, diag := range report.Diagnostics {
		if *quiet && diag.Severity == transfer.SeverityInfo {
			continue
		}
		fmt.Fprintf(os.Stderr, "%-7s %s\n", diag.Severity, diag)
	}
	fmt.Fprintf(os.Stderr, "%d transferred, %d skipped, %d failed\n",
		report.Count(transfer.StateTransferred), report.Count(transfer.StateUnclassified), len(report.Failures))

	if !writeScene(doc, *out) {
		return 1
	}

	if err := report.Err(); err != nil {
		logger.Error("Run finished with failures")
		return 2
	}
	return 0
}

// writeScene writes doc to path, or to stdout when path is empty.
func writeScene(doc *document.Memory, path string) bool {
	if path == "" {
		data, err := doc.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		os.Stdout.Write(data)
		return true
	}
	if err := doc.Save(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}
	logger.Sugar.Infof("Wrote %s", path)
	return true
}

func cmdReset(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	out := fs.String("o", "", "Output scene (default: stdout)")
	fs.Parse(args)

	doc, d, ok := loadScene(cfg, fs, "reset <scene.yaml> [-o out.yaml]")
	if !ok {
		return 1
	}

	n, err := d.Reset()
	logger.Info("Reset finished", zap.Int("objects", n), zap.String("scene", fs.Arg(0)))
	if !writeScene(doc, *out) {
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

func cmdClassify(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("classify", flag.ExitOnError)
	fs.Parse(args)

	doc, d, ok := loadScene(cfg, fs, "classify <scene.yaml>")
	if !ok {
		return 1
	}

	for _, m := range doc.Materials() {
		c, legacy := d.Category(m)
		if !legacy {
			fmt.Printf("  %-32s (no legacy fields)\n", doc.MaterialName(m))
			continue
		}
		fmt.Printf("  %-32s %s\n", doc.MaterialName(m), c)
	}
	return 0
}

func cmdPlan(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	dump := fs.Bool("dump", false, "Dump full plans")
	fs.Parse(args)

	doc, d, ok := loadScene(cfg, fs, "plan <scene.yaml> [-dump]")
	if !ok {
		return 1
	}

	for _, h := range doc.Objects() {
		if doc.ObjectType(h) != document.TypeMesh {
			continue
		}
		plan := d.Plan(h, nil)
		name := doc.ObjectName(h)
		logger.Sugar.Debugf("Planned %s into %d groups", name, len(plan.Groups))
		switch {
		case *dump:
			fmt.Printf("%s:\n", name)
			spew.Dump(plan)
		case plan.Empty():
			fmt.Printf("  %-32s (nothing to transfer)\n", name)
		case plan.Trivial():
			fmt.Printf("  %-32s %s\n", name, plan.Groups[0].Kind)
		default:
			kinds := make([]string, len(plan.Groups))
			for i, g := range plan.Groups {
				kinds[i] = fmt.Sprintf("%s(%d faces)", g.Kind, len(g.Faces))
			}
			fmt.Printf("  %-32s split: %s\n", name, strings.Join(kinds, ", "))
		}
	}
	return 0
}

func cmdParse(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	material := fs.Bool("material", false, "Parse as a material name")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: furnace parse [-material] <name>")
		return 1
	}
	rs, err := cfg.Ruleset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	name := fs.Arg(0)
	var effects []rules.Effect
	if *material {
		effects = rules.ParseName(name, rs.MaterialLexicon, rs.Precedence)
	} else {
		effects = rs.ObjectNameEffects(name)
	}
	if len(effects) == 0 {
		fmt.Println("(no symbols)")
		return 0
	}
	for _, e := range effects {
		fmt.Printf("  %s\n", e)
	}
	if *material {
		fmt.Printf("flags: %s\n", rs.MaterialNameFlags(name))
	}
	return 0
}

func cmdTables(cfg *config.Config) int {
	rs, err := cfg.Ruleset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	data, err := rules.MarshalTables(rs.Tables)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	os.Stdout.Write(data)
	return 0
}

func cmdInitConfig(cfg *config.Config, args []string) int {
	var err error
	if len(args) > 0 {
		err = cfg.SaveTo(args[0])
	} else {
		err = cfg.Save()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
