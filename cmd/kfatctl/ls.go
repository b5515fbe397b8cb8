package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/aligator/kfat/vfs"
)

var lsRecursive bool

func newLsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "list a directory's children",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLs,
	}
	cmd.Flags().BoolVarP(&lsRecursive, "recursive", "R", false, "walk the whole subtree instead of listing one directory")
	return cmd
}

func runLs(cmd *cobra.Command, args []string) error {
	path := "/"
	if len(args) == 1 {
		path = args[0]
	}

	if lsRecursive {
		return lsWalk(cmd, path)
	}
	return lsOne(cmd, path)
}

// lsOne lists a single directory's immediate children directly through the
// mounted handle, without the bookkeeping afero.Walk carries for a subtree
// it doesn't need to do here.
func lsOne(cmd *cobra.Command, path string) error {
	fd := app.state.Open([]byte(path), 0, 0)
	if fd < 0 {
		return fmt.Errorf("open %s: errno %d", path, fd)
	}
	defer app.state.Close(int(fd))

	h := app.state.Task.Handle(int(fd))
	lister, ok := h.FS.(vfs.DirLister)
	if !ok {
		return fmt.Errorf("%s: filesystem does not support directory listing", path)
	}

	entries, err := lister.Readdir(h)
	if err != nil {
		return fmt.Errorf("readdir %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		printLsLine(out, e.Name, e)
	}
	return nil
}

// lsWalk lists the whole subtree rooted at path using afero.Walk over a
// vfs.AferoFS, the way the teacher's cmd/gofat/main.go walks an image,
// instead of hand-rolling the recursion lsOne would need to grow to cover
// this case.
func lsWalk(cmd *cobra.Command, path string) error {
	aferoFS := vfs.NewAferoFS(app.fatFS)
	out := cmd.OutOrStdout()
	return afero.Walk(aferoFS, path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", p, err)
		}
		printLsLine(out, p, vfs.Stat{
			Name:    info.Name(),
			Size:    info.Size(),
			IsDir:   info.IsDir(),
			ModTime: info.ModTime(),
		})
		return nil
	})
}

func printLsLine(out interface{ Write([]byte) (int, error) }, name string, e vfs.Stat) {
	kind := byte('-')
	if e.IsDir {
		kind = 'd'
	}
	fmt.Fprintf(out, "%c %10d  %s  %s\n", kind, e.Size, e.ModTime.Format("2006-01-02 15:04"), name)
}
