package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	var buildInfo bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ember %s\n", version)
			if !buildInfo {
				return
			}
			fmt.Printf("commit:  %s\n", commit)
			fmt.Printf("built:   %s\n", date)
			fmt.Printf("runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVar(&buildInfo, "build", false, "Include commit and build details")

	return cmd
}
