package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cat PATH",
		Short: "print a file's contents",
		Args:  cobra.ExactArgs(1),
		RunE:  runCat,
	}
}

func runCat(cmd *cobra.Command, args []string) error {
	path := args[0]

	fd := app.state.Open([]byte(path), 0, 0)
	if fd < 0 {
		return fmt.Errorf("open %s: errno %d", path, fd)
	}
	defer app.state.Close(int(fd))

	out := cmd.OutOrStdout()
	buf := make([]byte, 64*1024)
	for {
		n := app.state.Read(int(fd), buf, len(buf))
		if n < 0 {
			return fmt.Errorf("read %s: errno %d", path, n)
		}
		if n == 0 {
			return nil
		}
		if _, err := out.Write(buf[:n]); err != nil {
			return err
		}
	}
}
