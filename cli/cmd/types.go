package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/ardnew/tmplgen/lang"
)

// Types lists the supported placeholder types.
type Types struct {
	Format Format `default:"text" enum:"text,json,yaml" help:"Output format."`
}

type typeInfo struct {
	Path    string `json:"path"    yaml:"path"`
	Class   string `json:"class"   yaml:"class"`
	Usage   string `json:"usage"   yaml:"usage"`
	Example string `json:"example" yaml:"example"`
	Help    string `json:"help"    yaml:"help"`
}

func typeInfos() []typeInfo {
	infos := make([]typeInfo, 0, len(lang.Paths()))

	for k := range lang.Kinds() {
		infos = append(infos, typeInfo{
			Path:    k.Path(),
			Class:   k.Class(),
			Usage:   k.Usage(),
			Example: k.Example(),
			Help:    k.Help(),
		})
	}

	return infos
}

// Run executes the types command.
func (t *Types) Run(ctx context.Context) error {
	stdout, _ := streams(ctx)
	infos := typeInfos()

	if t.Format.structured() {
		return t.Format.encode(ctx, stdout, infos)
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tEXAMPLE\tDESCRIPTION")

	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Usage, info.Example, info.Help)
	}

	return tw.Flush()
}
