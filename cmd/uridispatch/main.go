package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/glesirok/uridispatch/pkg/processor"
)

type options struct {
	registryFile string
	input        string
	output       string
	dryRun       bool
	verbose      bool
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "uridispatch [path...]",
		Short: "Decode request paths into a resource id and filter invocations",
		Long: `uridispatch splits request paths of the form /{id}/{filter}/{params}/...
into a resource id and a list of filters with typed parameters, using the
patterns declared in a filter registry file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args, stdout, stderr)
		},
	}

	rootCmd.Flags().StringVarP(&opts.registryFile, "config", "c", "", "Filter registry file (required)")
	rootCmd.Flags().StringVarP(&opts.input, "input", "i", "", "Input file or directory with one path per line")
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output report file/directory (optional, defaults to stdout)")
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Dry-run mode: print reports instead of writing files")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every filter that was not applied")

	rootCmd.MarkFlagRequired("config")

	return rootCmd
}

func run(opts *options, args []string, stdout, stderr io.Writer) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if opts.input == "" && len(args) == 0 {
		return fmt.Errorf("nothing to dispatch: pass paths as arguments or use --input")
	}

	proc, err := processor.NewProcessor(opts.registryFile, logger)
	if err != nil {
		return fmt.Errorf("create processor: %w", err)
	}
	proc.SetOutput(stdout)

	// 直接传入的路径输出到 stdout
	if len(args) > 0 {
		if err := processor.WriteReport(stdout, proc.Report(args)); err != nil {
			return err
		}
	}

	if opts.input == "" {
		return nil
	}

	info, err := os.Stat(opts.input)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}

	if info.IsDir() {
		return proc.ProcessDirectory(opts.input, opts.output, opts.dryRun)
	}

	return proc.ProcessFile(opts.input, opts.output, opts.dryRun)
}
