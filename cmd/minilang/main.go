// Command minilang is the MiniLang driver: scan, parse, compile, run.
//
// MiniLang is a toy language for teaching register-based bytecode
// compilation. Do not use it for anything resembling production work.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/minilang/minilang/internal/bytecode"
	"github.com/minilang/minilang/internal/cache"
	"github.com/minilang/minilang/internal/compiler"
	"github.com/minilang/minilang/internal/config"
	"github.com/minilang/minilang/internal/introspect"
	"github.com/minilang/minilang/internal/parser"
	"github.com/minilang/minilang/internal/trace"
	"github.com/minilang/minilang/internal/vm"
)

const banner = `
 __  __ _       _ _
|  \/  (_)     (_) |
| \  / |_ _ __  _| |     __ _ _ __   __ _
| |\/| | | '_ \| | |    / _` + "`" + ` | '_ \ / _` + "`" + ` |
| |  | | | | | | | |___| (_| | | | | (_| |
|_|  |_|_|_| |_|_|______\__,_|_| |_|\__, |
                                     __/ |
                                    |___/
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("minilang", flag.ContinueOnError)
	var (
		traceFlag = fs.Bool("trace", false, "log every executed instruction")
		quiet     = fs.Bool("quiet", false, "suppress the startup banner")
		dump      = fs.Bool("dump", false, "print disassembly and exit without running")
		noCache   = fs.Bool("no-cache", false, "bypass the compiled-program cache")
		cachePath = fs.String("cache", "", "path to the compiled-program cache database")
		serve     = fs.String("serve", "", "listen on addr as an introspection server instead of running a file")
		stats     = fs.Bool("stats", false, "print instruction count, register high-water mark, and wall time after running")
		cfgPath   = fs.String("config", "minilang.yaml", "path to the optional config overlay")
	)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minilang: loading %s: %v\n", *cfgPath, err)
		return 1
	}

	logger := trace.New("info")
	if *traceFlag || cfg.TraceDefault {
		logger = trace.New("debug")
	}

	if *serve != "" {
		return runServer(*serve)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: minilang [flags] <file>")
		fs.PrintDefaults()
		return 1
	}
	path := fs.Arg(0)

	showBanner := cfg.Banner && !*quiet
	if showBanner && isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println(banner)
		fmt.Println("toy language for teaching register-based bytecode compilation.")
		fmt.Println("do not use this for production. report bugs as you find them.")
		fmt.Println()
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minilang: %v\n", err)
		return 1
	}

	effectiveCachePath := *cachePath
	if effectiveCachePath == "" {
		effectiveCachePath = cfg.CachePath
	}

	chunk, userFuncs, err := compileWithCache(string(source), effectiveCachePath, *noCache, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minilang: %v\n", err)
		return 1
	}

	if *dump {
		fmt.Print(bytecode.Disassemble(chunk, filepath.Base(path)))
		for name, fn := range userFuncs {
			fmt.Print(bytecode.Disassemble(fn.Chunk, name))
		}
		return 0
	}

	m := vm.New(userFuncs, vm.WithTracer(logger))

	start := time.Now()
	runErr := m.Run(chunk)
	elapsed := time.Since(start)

	if *stats {
		fmt.Fprintf(os.Stderr, "instructions: %s, registers: %s, elapsed: %s\n",
			humanize.Comma(int64(len(chunk.Code))), humanize.Comma(int64(chunk.RegCount)), elapsed)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "minilang: %v\n", runErr)
		return 1
	}
	return 0
}

func compileWithCache(source, cachePath string, noCache bool, logger *trace.Logger) (*bytecode.Chunk, map[string]*compiler.Func, error) {
	if cachePath != "" && !noCache {
		c, err := cache.Open(cachePath)
		if err != nil {
			return nil, nil, err
		}
		defer c.Close()

		digest := cache.Digest(source)
		if prog, ok, err := c.Lookup(digest); err == nil && ok {
			return prog.Chunk, prog.UserFuncs, nil
		}

		chunk, userFuncs, err := compileSource(source, logger)
		if err != nil {
			return nil, nil, err
		}
		_ = c.Store(digest, &cache.Program{Chunk: chunk, UserFuncs: userFuncs})
		return chunk, userFuncs, nil
	}

	return compileSource(source, logger)
}

func compileSource(source string, logger *trace.Logger) (*bytecode.Chunk, map[string]*compiler.Func, error) {
	done := logger.Phase("parse")
	p := parser.New(source)
	prog, err := p.Parse()
	done()
	if err != nil {
		return nil, nil, err
	}

	done = logger.Phase("compile")
	c := compiler.NewMain()
	err = c.Compile(prog.Statements)
	done()
	if err != nil {
		return nil, nil, err
	}

	return c.Chunk(), c.UserFuncs(), nil
}

func runServer(addr string) int {
	s, err := introspect.Listen(addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minilang: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "minilang: introspection server listening on %s\n", s.Addr())
	if err := s.Serve(); err != nil {
		fmt.Fprintf(os.Stderr, "minilang: %v\n", err)
		return 1
	}
	return 0
}
