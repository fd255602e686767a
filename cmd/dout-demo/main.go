// Package main provides the dout-demo binary, a small tour of the debug
// printer: highlighted output, stack traces, and crash reports.
//
// The crash subcommand doubles as an end-to-end fixture for the fatal
// signal trap; it raises a real signal and dies with its default
// disposition.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/fresco-dev/dout/pkg/dout"
	"github.com/fresco-dev/dout/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "dout-demo",
		Short:         "dout demo - highlighted debug output and stack traces",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newFlowCmd())
	rootCmd.AddCommand(newTraceCmd())
	rootCmd.AddCommand(newCrashCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlowCmd demonstrates plain printing, highlighting, precision, and
// color configuration.
func newFlowCmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Tour of printing, highlighting, and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := dout.Default

			p.Println("Normal printing.")
			p.Print("And ", 4, " more words.")
			p.Println()

			p.Here()

			p.Highlight("highlighted text")
			p.Highlight("label", "text")
			p.Highlight("label", "text", " separator ")

			p.SetPrecision(13)
			p.Println(0.1 + 0.2)

			if err := p.SetColor("1;34"); err != nil {
				return err
			}
			p.Highlight("bold blue", "from here on")

			p.Type(42)
			p.Type(p)

			if logFile != "" {
				f, err := os.Create(logFile) // #nosec G304: user-chosen demo output path
				if err != nil {
					return fmt.Errorf("failed to create log file: %w", err)
				}
				// Hand the file off to the printer; no color escapes in files.
				p.SetOwnedOutput(f)
				p.ResetColor()
				p.Println("Writing to file from any scope.")
				p.Here()
				return p.Close()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "redirect printer output to a file")
	return cmd
}

// newTraceCmd prints a stack trace from the bottom of a small call chain.
func newTraceCmd() *cobra.Command {
	var compact bool
	var depth int

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print a stack trace from a nested call chain",
		Run: func(cmd *cobra.Command, args []string) {
			f1(compact, depth)
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "only print function names")
	cmd.Flags().IntVar(&depth, "depth", 50, "maximum frames to print")
	return cmd
}

//go:noinline
func f1(compact bool, depth int) { f2(compact, depth) }

//go:noinline
func f2(compact bool, depth int) { f3(compact, depth) }

//go:noinline
func f3(compact bool, depth int) {
	dout.Func()
	dout.Stack(dout.Compact(compact), dout.Depth(depth))
}

// newCrashCmd arms the signal trap and raises a fatal signal.
func newCrashCmd() *cobra.Command {
	var sigName string

	cmd := &cobra.Command{
		Use:   "crash",
		Short: "Arm the crash trap and raise a fatal signal",
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, ok := map[string]unix.Signal{
				"abrt": unix.SIGABRT,
				"fpe":  unix.SIGFPE,
				"segv": unix.SIGSEGV,
				"sys":  unix.SIGSYS,
			}[sigName]
			if !ok {
				return fmt.Errorf("unknown signal %q (want abrt, fpe, segv, or sys)", sigName)
			}

			dout.EnableCrashReports()
			dout.Println("raising ", sigName, ", crash report follows on stderr")

			if err := unix.Kill(unix.Getpid(), sig); err != nil {
				return fmt.Errorf("failed to raise signal: %w", err)
			}
			// The trap emits the report, restores the default disposition,
			// and re-raises; we never get past this point.
			select {}
		},
	}

	cmd.Flags().StringVar(&sigName, "signal", "segv", "signal to raise (abrt, fpe, segv, sys)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("dout version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}
