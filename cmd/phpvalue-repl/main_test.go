package main

import (
	"testing"

	"github.com/wudi/heycore/host"
	"github.com/wudi/heycore/values"
)

func TestParseLiteralScalars(t *testing.T) {
	cases := []struct {
		tok  string
		tag  values.Tag
		want string
	}{
		{"null", values.TagNull, ""},
		{"true", values.TagBool, "1"},
		{"false", values.TagBool, ""},
		{"42", values.TagInt, "42"},
		{"3.5", values.TagFloat, "3.5"},
		{`"hi"`, values.TagString, "hi"},
		{"bare", values.TagString, "bare"},
	}
	for _, c := range cases {
		v := parseLiteral(c.tok)
		if v.Tag != c.tag {
			t.Fatalf("parseLiteral(%q): tag = %s, want %s", c.tok, v.Tag, c.tag)
		}
	}
}

func TestDispatchParse(t *testing.T) {
	interp, err := host.NewDefaultInterpreter()
	if err != nil {
		t.Fatal(err)
	}
	got := dispatch(interp, "parse 42")
	want := `tag=Int as_string="42" is_true=true`
	if got != want {
		t.Fatalf("dispatch(parse 42) = %q, want %q", got, want)
	}
}

func TestDispatchParseWrongArity(t *testing.T) {
	interp, err := host.NewDefaultInterpreter()
	if err != nil {
		t.Fatal(err)
	}
	got := dispatch(interp, "parse")
	if got != "usage: parse <literal>" {
		t.Fatalf("dispatch(parse) = %q", got)
	}
}

func TestDispatchCmp(t *testing.T) {
	interp, err := host.NewDefaultInterpreter()
	if err != nil {
		t.Fatal(err)
	}
	got := dispatch(interp, "cmp loose 1 1.0")
	if got != "0" {
		t.Fatalf("dispatch(cmp loose 1 1.0) = %q, want 0", got)
	}
}

func TestDispatchArithmetic(t *testing.T) {
	interp, err := host.NewDefaultInterpreter()
	if err != nil {
		t.Fatal(err)
	}
	got := dispatch(interp, "add 2 3")
	if got != "int(5)" {
		t.Fatalf("dispatch(add 2 3) = %q, want int(5)", got)
	}
}

func TestDispatchCallbackUnknownIsNull(t *testing.T) {
	interp, err := host.NewDefaultInterpreter()
	if err != nil {
		t.Fatal(err)
	}
	got := dispatch(interp, "callback does_not_exist")
	want := `null invocable; see diagnostics: phpvalue-repl() expects parameter 1 to be a valid callback, function "does_not_exist" not found or invalid function name`
	if got != want {
		t.Fatalf("dispatch(callback does_not_exist) = %q, want %q", got, want)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	interp, err := host.NewDefaultInterpreter()
	if err != nil {
		t.Fatal(err)
	}
	got := dispatch(interp, "bogus")
	want := `unknown command "bogus" (try ` + "`help`" + `)`
	if got != want {
		t.Fatalf("dispatch(bogus) = %q, want %q", got, want)
	}
}

func TestFormatResult(t *testing.T) {
	cases := []struct {
		v    *values.Value
		want string
	}{
		{values.NewBool(true), "bool(true)"},
		{values.NewInt(7), "int(7)"},
		{values.NewFloat(1.5), "float(1.5)"},
		{values.NewString("x"), `string("x")`},
	}
	for _, c := range cases {
		if got := formatResult(c.v); got != c.want {
			t.Fatalf("formatResult(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}
