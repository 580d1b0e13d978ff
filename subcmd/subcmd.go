// Package subcmd wraps flag.FlagSet with usage text for a journey
// subcommand that takes one positional argument.
package subcmd

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func New(name, doc string) *Subcommand {
	sc := &Subcommand{
		FlagSet: flag.NewFlagSet(name, flag.ContinueOnError),
		name:    name,
		doc:     doc,
	}
	sc.FlagSet.Usage = func() { sc.PrintUsage(os.Stderr) }
	return sc
}

type Subcommand struct {
	*flag.FlagSet
	name, doc string
	arg       *arg
}

type arg struct {
	name     string
	typename string
	usage    string
}

func (sc *Subcommand) SetArg(name, typname, usage string) *Subcommand {
	sc.arg = &arg{name, typname, usage}
	return sc
}

// PrintUsage writes the subcommand's doc, synopsis, and flags to w.
func (sc *Subcommand) PrintUsage(w io.Writer) {
	argSuffix := ""
	if sc.arg != nil {
		argSuffix = fmt.Sprintf(" <%s>", sc.arg.name)
	}
	fmt.Fprintf(w, "\n%s\n\n", sc.doc)
	fmt.Fprintf(w, "  journey %s [flags]%s\n\n", sc.name, argSuffix)
	fmt.Fprintf(w, "flags:\n")
	sc.FlagSet.SetOutput(w)
	sc.FlagSet.PrintDefaults()
	if sc.arg != nil {
		fmt.Fprintf(w, "  <%s> %s\n", sc.arg.name, sc.arg.typename)
		fmt.Fprintf(w, "  \t%s\n", sc.arg.usage)
	}
}
