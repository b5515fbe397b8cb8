package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/aligator/kfat/vfs"
)

func newDiagnoseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "walk the whole tree and report every path that fails to open, list or stat",
		Args:  cobra.NoArgs,
		RunE:  runDiagnose,
	}
}

// runDiagnose walks the whole mounted tree through afero.Walk over a
// vfs.AferoFS, the way the teacher's cmd/gofat/main.go walks an image,
// accumulating one multierror entry per path that fails to open, list or
// stat rather than aborting on the first structural problem the way a
// plain error return from afero.Walk would.
func runDiagnose(cmd *cobra.Command, args []string) error {
	var result *multierror.Error
	files, dirs := 0, 0

	aferoFS := vfs.NewAferoFS(app.fatFS)
	_ = afero.Walk(aferoFS, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", p, err))
			return nil
		}
		if info.IsDir() {
			dirs++
		} else {
			files++
		}
		return nil
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "visited %d director%s, %d file%s\n",
		dirs, plural(dirs, "y", "ies"), files, plural(files, "", "s"))

	if result == nil {
		fmt.Fprintln(out, "no structural problems found")
		return nil
	}
	fmt.Fprintf(out, "%d problem(s) found:\n", len(result.Errors))
	for _, err := range result.Errors {
		fmt.Fprintf(out, "  - %v\n", err)
	}
	return result.ErrorOrNil()
}

func plural(n int, singular, pluralSuffix string) string {
	if n == 1 {
		return singular
	}
	return pluralSuffix
}
