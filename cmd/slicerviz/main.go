package main

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "slicerviz",
		Short:         "Demo host for the attribute slicer and time scale visuals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	if err := root.Execute(); err != nil {
		log.Fatalf("slicerviz: %s", err)
	}
}
