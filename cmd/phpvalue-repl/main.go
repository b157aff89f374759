// Command phpvalue-repl is a small interactive shell over the value
// core: coercion, comparison, arithmetic, and callback resolution
// entered as simple one-line commands, useful for poking at the
// semantics this module implements without a full PHP parser wired in
// front of it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v3"

	"github.com/wudi/heycore/arith"
	"github.com/wudi/heycore/callback"
	"github.com/wudi/heycore/compare"
	"github.com/wudi/heycore/host"
	"github.com/wudi/heycore/values"
)

func main() {
	app := &cli.Command{
		Name:  "phpvalue-repl",
		Usage: "interactive shell over the PHP value core",
		Commands: []*cli.Command{
			{
				Name:  "eval",
				Usage: "evaluate one command line and exit",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					interp, err := host.NewDefaultInterpreter()
					if err != nil {
						return err
					}
					line := strings.Join(cmd.Args().Slice(), " ")
					fmt.Println(dispatch(interp, line))
					return nil
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShell()
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runShell() error {
	interp, err := host.NewDefaultInterpreter()
	if err != nil {
		return err
	}

	rl, err := readline.New("phpvalue> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("phpvalue-repl - type `help` for commands, `exit` to quit")
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		fmt.Println(dispatch(interp, line))
	}
	return nil
}

func help() string {
	return strings.Join([]string{
		"commands:",
		"  parse <literal>             - show tag and as_string() projection",
		"  cmp <loose|strict> <a> <b>   - compare two literals",
		"  add|sub|mul|div|mod <a> <b>  - arithmetic",
		"  callback <name>              - resolve a plain-function callback string",
		"  help",
	}, "\n")
}

// dispatch parses and runs one REPL line, returning the text to print.
func dispatch(interp *host.DefaultInterpreter, line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "help":
		return help()
	case "parse":
		if len(fields) != 2 {
			return "usage: parse <literal>"
		}
		v := parseLiteral(fields[1])
		return fmt.Sprintf("tag=%s as_string=%q is_true=%v", v.Tag, values.AsString(interp, v), values.IsTrue(v))
	case "cmp":
		if len(fields) != 4 {
			return "usage: cmp <loose|strict> <a> <b>"
		}
		a, b := parseLiteral(fields[2]), parseLiteral(fields[3])
		strict := fields[1] == "strict"
		return fmt.Sprintf("%d", compare.Compare(interp, a, b, strict, false))
	case "add", "sub", "mul", "div", "mod":
		if len(fields) != 3 {
			return fmt.Sprintf("usage: %s <a> <b>", fields[0])
		}
		a, b := parseLiteral(fields[1]), parseLiteral(fields[2])
		return formatResult(arithmetic(interp, fields[0], a, b))
	case "callback":
		if len(fields) != 2 {
			return "usage: callback <name>"
		}
		b := callback.GetCallback(interp, "phpvalue-repl", 1, values.NewString(fields[1]), true)
		if b.IsNull() {
			return fmt.Sprintf("null invocable; see diagnostics: %s", interp.LastError())
		}
		return fmt.Sprintf("resolved %q", b.Name)
	default:
		return fmt.Sprintf("unknown command %q (try `help`)", fields[0])
	}
}

func arithmetic(interp *host.DefaultInterpreter, op string, a, b *values.Value) *values.Value {
	switch op {
	case "add":
		return arith.Add(interp, a, b)
	case "sub":
		return arith.Sub(interp, a, b)
	case "mul":
		return arith.Mul(interp, a, b)
	case "div":
		return arith.Div(interp, a, b)
	case "mod":
		return arith.Mod(interp, a, b)
	default:
		return values.NewNull()
	}
}

func formatResult(v *values.Value) string {
	v = values.Deref(v)
	switch v.Tag {
	case values.TagBool:
		return fmt.Sprintf("bool(%v)", v.BoolVal())
	case values.TagInt:
		return fmt.Sprintf("int(%d)", v.IntVal())
	case values.TagFloat:
		return fmt.Sprintf("float(%v)", v.FloatVal())
	case values.TagString:
		return fmt.Sprintf("string(%q)", v.StrVal())
	default:
		return v.Tag.String()
	}
}

// parseLiteral turns a bare REPL token into a Value: null, true or
// false, decimal integer, decimal float, or else a raw string (quotes,
// if present, are stripped).
func parseLiteral(tok string) *values.Value {
	if tok == "null" {
		return values.NewNull()
	}
	if tok == "true" || tok == "false" {
		return values.NewBool(tok == "true")
	}
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return values.NewInt(i)
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return values.NewFloat(f)
	}
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		return values.NewString(tok[1 : len(tok)-1])
	}
	return values.NewString(tok)
}
