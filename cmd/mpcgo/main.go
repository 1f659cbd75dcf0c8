// Command mpcgo runs one of a handful of bundled demo grammars against a
// literal string, a file, or stdin, and prints either the parsed value or
// the parser's error.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bshepherdson/mpcgo"
)

var (
	grammarName string
	debug       bool
	noColor     bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mpcgo",
		Short: "Run a bundled demo grammar against some input",
	}

	root.PersistentFlags().StringVarP(&grammarName, "grammar", "g", "arith", grammarHelp())
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log grammar selection and parse result detail")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(stringCmd(), fileCmd(), pipeCmd())
	return root
}

func grammarHelp() string {
	names := make([]string, 0, len(grammars))
	for n := range grammars {
		names = append(names, n)
	}
	sort.Strings(names)
	return fmt.Sprintf("which demo grammar to use (%v)", names)
}

func stringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "string <text>",
		Short: "Parse a literal argument",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := lookupGrammar()
			if err != nil {
				return err
			}
			return report(mpcgo.ParseString("<arg>", args[0], g))
		},
	}
}

func fileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "file <path>",
		Short: "Parse the contents of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := lookupGrammar()
			if err != nil {
				return err
			}
			return report(mpcgo.ParseContents(args[0], g))
		},
	}
}

func pipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pipe",
		Short: "Parse stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := lookupGrammar()
			if err != nil {
				return err
			}
			return report(mpcgo.ParsePipe("<stdin>", os.Stdin, g))
		},
	}
}

func lookupGrammar() (*mpcgo.Parser, error) {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	g, ok := grammars[grammarName]
	if !ok {
		return nil, fmt.Errorf("unknown grammar %q", grammarName)
	}
	logrus.Debugf("building grammar %s: %s", g.name, g.description)
	return g.build(), nil
}

func report(r mpcgo.Result) error {
	if !r.OK() {
		logrus.Debugln("parse failed")
		return r.Err
	}
	logrus.Debugf("parse succeeded: %#v", r.Value)
	printResult(r.Value)
	return nil
}

func printResult(v interface{}) {
	if noColor {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Printf("\x1b[1m\x1b[32m%v\x1b[0m\n", v)
}
