package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/jerbob92/javabind/generator/generator"

	"github.com/spf13/cobra"
)

func main() {
	var (
		input       string
		output      string
		packageName string
	)

	cmd := &cobra.Command{
		Use:   "javabind-generator --input <declarations.yaml> [flags]",
		Short: "Generates typed Go bindings for javabind call declarations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(".")
			if err != nil {
				return err
			}

			// Under go:generate the package is the one of the file with the directive.
			if goFile := os.Getenv("GOFILE"); packageName == "" && goFile != "" {
				packageName, err = generator.LoadPackageName(dir, goFile)
				if err != nil {
					return err
				}
			}

			declarations, err := os.ReadFile(input)
			if err != nil {
				return err
			}

			return generator.Generate(dir, output, declarations, packageName)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "the YAML file with the call declarations (required)")
	cmd.Flags().StringVar(&output, "output", "bindings.go", "the Go file to write")
	cmd.Flags().StringVar(&packageName, "package", "", "the package name of the generated file, defaults to the declarations or the existing package")
	cmd.MarkFlagRequired("input")

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
