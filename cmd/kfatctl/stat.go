package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aligator/kfat/vfs"
)

func newStatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stat PATH",
		Short: "report size, directory bit and modification time for a path",
		Args:  cobra.ExactArgs(1),
		RunE:  runStat,
	}
}

func runStat(cmd *cobra.Command, args []string) error {
	path := args[0]

	var st vfs.Stat
	if r := app.state.Stat64([]byte(path), &st); r < 0 {
		return fmt.Errorf("stat %s: errno %d", path, r)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "path:     %s\n", path)
	fmt.Fprintf(out, "size:     %d\n", st.Size)
	fmt.Fprintf(out, "isDir:    %t\n", st.IsDir)
	fmt.Fprintf(out, "modified: %s\n", st.ModTime.Format("2006-01-02 15:04:05"))
	return nil
}
