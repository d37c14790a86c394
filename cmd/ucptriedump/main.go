// Command ucptriedump builds, inspects, and queries ucptrie binary files.
// It is a thin driver over the package's Builder, Trie, and binary codec;
// it contains no trie logic of its own.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/go-icu/ucptrie"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ucptriedump: failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app := &cli.App{
		Name:  "ucptriedump",
		Usage: "build, inspect, and query ucptrie binary files",
		Commands: []*cli.Command{
			buildCommand(logger),
			inspectCommand(logger),
			getCommand(logger),
			rangesCommand(logger),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func buildCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "build a trie from a range-assignment script and write it to a file",
		ArgsUsage: "<script> <out>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 2 {
				return cli.Exit("build requires <script> <out>", 1)
			}
			script, out := c.Args().Get(0), c.Args().Get(1)

			b, kind, width, err := runScript(script)
			if err != nil {
				return fmt.Errorf("running build script %s: %w", script, err)
			}

			t, err := b.BuildImmutable(kind, width)
			if err != nil {
				return fmt.Errorf("compacting trie: %w", err)
			}

			blob := t.ToBinary()
			if err := os.WriteFile(out, blob, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}

			logger.Info("built trie",
				zap.String("kind", t.Kind().String()),
				zap.String("width", t.ValueWidth().String()),
				zap.Int("bytes", len(blob)),
				zap.String("out", out),
			)
			return nil
		},
	}
}

func inspectCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "load a trie and log its shape",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			t, err := loadTrie(c, logger)
			if err != nil {
				return err
			}
			logger.Info("trie shape",
				zap.String("kind", t.Kind().String()),
				zap.String("width", t.ValueWidth().String()),
			)
			return nil
		},
	}
}

func getCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "load a trie and look up one code point",
		ArgsUsage: "<file> <cp>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 2 {
				return cli.Exit("get requires <file> <cp>", 1)
			}
			t, err := ucptrie.FromBinary(mustRead(c.Args().Get(0)), nil, nil)
			if err != nil {
				return fmt.Errorf("loading %s: %w", c.Args().Get(0), err)
			}
			cp, err := parseCodePoint(c.Args().Get(1))
			if err != nil {
				return err
			}
			logger.Info("lookup",
				zap.String("cp", fmt.Sprintf("U+%04X", cp)),
				zap.Uint32("value", t.Get(cp)),
			)
			return nil
		},
	}
}

func rangesCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "ranges",
		Usage:     "load a trie and log every same-value range it contains",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			t, err := loadTrie(c, logger)
			if err != nil {
				return err
			}

			var start rune
			for start <= ucptrie.MaxCodePoint {
				r, ok := t.GetRange(start, nil, ucptrie.RangeNormal, 0)
				if !ok {
					break
				}
				logger.Info("range", zap.String("range", r.String()))
				if r.End >= ucptrie.MaxCodePoint {
					break
				}
				start = r.End + 1
			}
			return nil
		},
	}
}

func loadTrie(c *cli.Context, logger *zap.Logger) (*ucptrie.Trie, error) {
	if c.Args().Len() != 1 {
		return nil, cli.Exit("expected exactly one <file> argument", 1)
	}
	file := c.Args().Get(0)
	t, err := ucptrie.FromBinary(mustRead(file), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", file, err)
	}
	logger.Debug("loaded trie", zap.String("file", file))
	return t, nil
}

func mustRead(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ucptriedump: reading", path, ":", err)
		os.Exit(1)
	}
	return data
}

func parseCodePoint(s string) (rune, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "U+"), "u+")
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		v2, err2 := strconv.ParseInt(s, 10, 32)
		if err2 != nil {
			return 0, fmt.Errorf("parsing code point %q: %w", s, err)
		}
		v = v2
	}
	return rune(v), nil
}

// runScript interprets a line-oriented build script:
//
//	kind fast|small
//	width 8|16|32
//	initial <value>
//	error <value>
//	set <cp> <value>
//	range <start> <end> <value>
//
// Directives other than set/range may appear at most once, before any
// set/range line; kind/width default to fast/32 if never given.
func runScript(path string) (*ucptrie.Builder, ucptrie.Kind, ucptrie.ValueWidth, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	kind := ucptrie.Fast
	width := ucptrie.Width32
	var initial, errVal uint64

	var b *ucptrie.Builder
	ensureBuilder := func() {
		if b == nil {
			b = ucptrie.NewBuilder(uint32(initial), uint32(errVal))
		}
	}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	seen := make(map[string]bool)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "kind", "width", "initial", "error":
			if seen[fields[0]] {
				return nil, 0, 0, fmt.Errorf("line %d: %s given more than once", lineNo, fields[0])
			}
			if b != nil {
				return nil, 0, 0, fmt.Errorf("line %d: %s must come before any set/range line", lineNo, fields[0])
			}
			seen[fields[0]] = true
		}

		switch fields[0] {
		case "kind":
			switch fields[1] {
			case "fast":
				kind = ucptrie.Fast
			case "small":
				kind = ucptrie.Small
			default:
				return nil, 0, 0, fmt.Errorf("line %d: unknown kind %q", lineNo, fields[1])
			}
		case "width":
			switch fields[1] {
			case "8":
				width = ucptrie.Width8
			case "16":
				width = ucptrie.Width16
			case "32":
				width = ucptrie.Width32
			default:
				return nil, 0, 0, fmt.Errorf("line %d: unknown width %q", lineNo, fields[1])
			}
		case "initial":
			initial, err = strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return nil, 0, 0, fmt.Errorf("line %d: %w", lineNo, err)
			}
		case "error":
			errVal, err = strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return nil, 0, 0, fmt.Errorf("line %d: %w", lineNo, err)
			}
		case "set":
			ensureBuilder()
			cp, err := parseCodePoint(fields[1])
			if err != nil {
				return nil, 0, 0, fmt.Errorf("line %d: %w", lineNo, err)
			}
			v, err := strconv.ParseUint(fields[2], 10, 32)
			if err != nil {
				return nil, 0, 0, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if err := b.Set(cp, uint32(v)); err != nil {
				return nil, 0, 0, fmt.Errorf("line %d: %w", lineNo, err)
			}
		case "range":
			ensureBuilder()
			start, err := parseCodePoint(fields[1])
			if err != nil {
				return nil, 0, 0, fmt.Errorf("line %d: %w", lineNo, err)
			}
			end, err := parseCodePoint(fields[2])
			if err != nil {
				return nil, 0, 0, fmt.Errorf("line %d: %w", lineNo, err)
			}
			v, err := strconv.ParseUint(fields[3], 10, 32)
			if err != nil {
				return nil, 0, 0, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if err := b.SetRange(start, end, uint32(v)); err != nil {
				return nil, 0, 0, fmt.Errorf("line %d: %w", lineNo, err)
			}
		default:
			return nil, 0, 0, fmt.Errorf("line %d: unknown directive %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, 0, err
	}

	ensureBuilder()
	return b, kind, width, nil
}
