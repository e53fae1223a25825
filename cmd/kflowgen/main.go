// Command kflowgen generates node loops for kflow.
//
//	kflowgen arity --max-in 3 --max-out 3 -o zz_generated_arity.go
//	kflowgen derive --type Mixer,Gain
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/birdayz/kflow/internal/codegen"
	"github.com/spf13/cobra"
)

var (
	maxInputs  int
	maxOutputs int
	output     string
	typeNames  []string
	dir        string

	rootCmd = &cobra.Command{
		Use:           "kflowgen",
		Short:         "Generates kflow node loops",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	arityCmd = &cobra.Command{
		Use:   "arity",
		Short: "Renders the NodeIxO families of package knode",
		Args:  cobra.NoArgs,
		RunE:  runArity,
	}

	deriveCmd = &cobra.Command{
		Use:   "derive",
		Short: "Generates Register, Bind and Run for structs with kchan fields and a Step method",
		Long: `derive parses the package in the working directory (or --dir) and, for each
named struct, treats *kchan.Receiver[T] fields as inputs and *kchan.Sender[T]
fields as outputs, in declaration order. All other fields are private state.
The Step method must take a context.Context followed by one parameter per
input and return one value per output followed by an error.`,
		Args: cobra.NoArgs,
		RunE: runDerive,
	}
)

func init() {
	arityCmd.Flags().IntVar(&maxInputs, "max-in", 3, "maximum number of inputs")
	arityCmd.Flags().IntVar(&maxOutputs, "max-out", 3, "maximum number of outputs")
	arityCmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout if empty")

	deriveCmd.Flags().StringSliceVar(&typeNames, "type", nil, "comma separated list of node struct names")
	deriveCmd.Flags().StringVar(&dir, "dir", ".", "package directory")
	deriveCmd.Flags().StringVarP(&output, "output", "o", "", "output file, <file>_kflow.go next to the first type if empty")
	_ = deriveCmd.MarkFlagRequired("type")

	rootCmd.AddCommand(arityCmd, deriveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kflowgen:", err)
		os.Exit(1)
	}
}

func runArity(cmd *cobra.Command, _ []string) error {
	var buf bytes.Buffer
	err := codegen.GenerateArity(&buf, codegen.ArityConfig{
		MaxInputs:  maxInputs,
		MaxOutputs: maxOutputs,
	})
	if err != nil {
		return err
	}
	if output == "" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	return os.WriteFile(output, buf.Bytes(), 0o644)
}

func runDerive(cmd *cobra.Command, _ []string) error {
	path, err := codegen.Derive(dir, typeNames, output)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "kflowgen: wrote", path)
	return nil
}
