// Command kfatctl mounts a FAT16/32 image through the kfat vfs/syscall
// stack and exercises it end to end: ls, cat and stat dispatch through
// syscall.State exactly as a real caller of open/read/stat64 would, and
// diagnose walks the whole tree looking for structural trouble.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aligator/kfat/kernel"
	"github.com/aligator/kfat/syscall"
	"github.com/aligator/kfat/vfs"
)

var imagePath string

// app holds the collaborators every subcommand dispatches through, built
// once in the root command's PersistentPreRunE after the image is parsed.
var app struct {
	fatFS  *vfs.FatFS
	state  *syscall.State
	logger *zap.SugaredLogger
}

func main() {
	root := &cobra.Command{
		Use:               "kfatctl",
		Short:             "inspect a FAT16/32 image through the kfat VFS/syscall stack",
		SilenceUsage:      true,
		PersistentPreRunE: mountImage,
	}
	root.PersistentFlags().StringVarP(&imagePath, "image", "i", "", "path to a FAT16/32 image file (FAT12 is rejected)")
	_ = root.MarkPersistentFlagRequired("image")

	root.AddCommand(
		newLsCommand(),
		newCatCommand(),
		newStatCommand(),
		newDiagnoseCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// mountImage reads the image file, mounts it at "/", and wires the
// kernel.Task/UserMemory/syscall.State trio every subcommand shares.
func mountImage(cmd *cobra.Command, args []string) error {
	image, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	fatFS, err := vfs.NewFatFS(image)
	if err != nil {
		return fmt.Errorf("mount image: %w", err)
	}

	mounts := vfs.NewMountTable()
	mounts.Add("/", fatFS)

	zapLog, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	app.fatFS = fatFS
	app.logger = zapLog.Sugar()
	app.state = &syscall.State{
		Task:   kernel.NewTask(1, "/"),
		Mem:    &kernel.UserMemory{},
		Mounts: mounts,
		Log:    app.logger,
	}
	return nil
}
