// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mdhender/ippc"
	"github.com/mdhender/ippc/harness"
	"github.com/mdhender/ippc/renderer"
	store "github.com/mdhender/ippc/stores/sqlite"
	"github.com/mdhender/ippc/web/handlers"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// diagnostics have already been printed by the command
		if _, ok := ippc.DiagnosticFor(err); !ok {
			log.Printf("ippc: %v\n", err)
		}
		atexit.Exit(ippc.ExitCode(err))
	}
	atexit.Exit(ippc.ExitOK)
}

func newRootCmd() *cobra.Command {
	addFlags := func(cmd *cobra.Command) error {
		cmd.PersistentFlags().Bool("debug", false, "log debugging information")
		cmd.PersistentFlags().Bool("log-with-default-flags", false, "log with default flags")
		cmd.PersistentFlags().Bool("log-with-shortfile", false, "log with short file name")
		cmd.PersistentFlags().Bool("log-with-timestamp", false, "log with timestamp")
		cmd.PersistentFlags().Bool("quiet", false, "log less information")
		cmd.PersistentFlags().Bool("show-version", false, "show version")
		cmd.PersistentFlags().Bool("verbose", false, "log more information")
		return nil
	}
	var cmdRoot = &cobra.Command{
		Use:           "ippc",
		Short:         "IPPcode21 command line utility",
		Long:          `Translate IPPcode21 source into its XML representation and test the translator`,
		SilenceErrors: true,
		// the root must be runnable or cobra shows help for unknown commands
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("%s: %w: unknown command %q", cmd.Name(), ippc.ErrUsage, args[0])
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logWithDefaultFlags, _ := cmd.Flags().GetBool("log-with-default-flags")
			logWithShortFileName, _ := cmd.Flags().GetBool("log-with-shortfile")
			logWithTimestamp, _ := cmd.Flags().GetBool("log-with-timestamp")
			logFlags := 0
			if logWithShortFileName {
				logFlags |= log.Lshortfile
			}
			if logWithTimestamp {
				logFlags |= log.Ltime
			}
			if logWithDefaultFlags {
				logFlags = log.LstdFlags
			}
			log.SetFlags(logFlags)

			if showVersion, _ := cmd.Flags().GetBool("show-version"); showVersion {
				log.Printf("ippc: version %q\n", ippc.Version().Core())
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	// unknown flags are usage errors, the same as unexpected arguments
	cmdRoot.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%s: %w: %v", cmd.Name(), ippc.ErrUsage, err)
	})
	cmdRoot.AddCommand(cmdParse())
	cmdRoot.AddCommand(cmdLex())
	cmdRoot.AddCommand(cmdServe())
	cmdRoot.AddCommand(cmdTest())
	cmdRoot.AddCommand(cmdVersion())
	if err := addFlags(cmdRoot); err != nil {
		log.Fatal(err)
	}
	return cmdRoot
}

// newLogger returns a logger for the library code based on the
// persistent log level flags. Warnings are logged by default.
func newLogger(cmd *cobra.Command) *slog.Logger {
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")
	debug, _ := cmd.Flags().GetBool("debug")
	withSource, _ := cmd.Flags().GetBool("log-with-shortfile")

	level := slog.LevelWarn
	switch {
	case debug:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		AddSource: withSource,
		Level:     level,
	}))
}

// noArgs rejects positional arguments before any input is read.
func noArgs(cmd *cobra.Command, args []string) error {
	return maxArgs(0)(cmd, args)
}

// maxArgs rejects more than n positional arguments as a usage error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return fmt.Errorf("%s: %w: unexpected argument %q", cmd.Name(), ippc.ErrUsage, args[n])
		}
		return nil
	}
}

// readSource reads the named file, or standard input if the name is empty.
func readSource(cmd *cobra.Command, name string) (string, []byte, error) {
	if name == "" {
		input, err := io.ReadAll(cmd.InOrStdin())
		return "<stdin>", input, err
	}
	input, err := os.ReadFile(name)
	return name, input, err
}

// report prints the diagnostic for a compile error.
func report(cmd *cobra.Command, err error, name string, src []byte) {
	if diag, ok := ippc.DiagnosticFor(err); ok {
		ippc.PrintDiagnostic(cmd.ErrOrStderr(), diag, name, src)
	}
}

func cmdParse() *cobra.Command {
	var inputFile string
	var outputFile string
	indent := "  "
	noDeclaration := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVarP(&inputFile, "input", "i", inputFile, "read source from file instead of stdin")
		cmd.Flags().StringVar(&indent, "indent", indent, "indentation for each level, empty for a single line")
		cmd.Flags().BoolVar(&noDeclaration, "no-declaration", noDeclaration, "omit the XML declaration")
		cmd.Flags().StringVarP(&outputFile, "output", "o", outputFile, "save document to file")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "parse",
		Short:        "translate IPPcode21 source to XML",
		Long:         `Read IPPcode21 source from stdin, check it, and write the XML representation to stdout.`,
		SilenceUsage: true,
		Args:         noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)

			name, input, err := readSource(cmd, inputFile)
			if err != nil {
				return err
			}

			started := time.Now()
			data, err := ippc.CompileXML(cmd.Context(), name, input, logger,
				ippc.WithIndent(indent),
				ippc.WithDeclaration(!noDeclaration))
			if err != nil {
				report(cmd, err, name, input)
				return err
			}
			logger.Info("parse: compiled", "source", name, "bytes", len(data), "elapsed", time.Since(started))

			if outputFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			} else if err = os.WriteFile(outputFile, data, 0o644); err != nil {
				return err
			}
			logger.Info("parse: wrote document", "path", outputFile, "bytes", len(data))

			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdLex() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "lex [source-file]",
		Short:        "dump the tokens of an IPPcode21 source",
		SilenceUsage: true,
		Args:         maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) != 0 {
				file = args[0]
			}
			name, input, err := readSource(cmd, file)
			if err != nil {
				return err
			}

			tokens, err := ippc.NewLexer(cmd.Context(), name, newLogger(cmd)).Lex(ippc.Preprocess(input))
			if err != nil {
				report(cmd, err, name, input)
				return err
			}
			w := cmd.OutOrStdout()
			for n, tok := range tokens {
				_, _ = fmt.Fprintf(w, "%-35s %5d %-20s %q\n", fmt.Sprintf("%s:%d:%d:", name, tok.Line, tok.Column), n+1, tok.Kind, tok.Display)
			}
			return nil
		},
	}
	return cmd
}

func cmdTest() *cobra.Command {
	directory := "."
	recursive := false
	createMissing := false
	failuresOnly := false
	intOnly := false
	var dbPath string
	var htmlFile string
	var title string
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&createMissing, "create-missing", createMissing, "create missing .in, .out and .rc files")
		cmd.Flags().StringVar(&dbPath, "db", dbPath, "save the results to a SQLite database")
		cmd.Flags().StringVarP(&directory, "directory", "d", directory, "directory holding the tests")
		cmd.Flags().BoolVar(&failuresOnly, "failures-only", failuresOnly, "list only failing tests in the report")
		cmd.Flags().StringVar(&htmlFile, "html", htmlFile, "save the HTML report to file instead of stdout")
		cmd.Flags().BoolVar(&intOnly, "int-only", intOnly, "run only the interpreter tests")
		cmd.Flags().Bool("parse-only", true, "run only the parser tests")
		cmd.Flags().BoolVarP(&recursive, "recursive", "r", recursive, "search subdirectories for tests")
		cmd.Flags().StringVar(&title, "title", title, "title of the HTML report")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "test",
		Short:        "run the parser against a directory of tests",
		Long:         `Compile every .src file in the directory, compare the exit code with .rc and the document with .out, and write an HTML report.`,
		SilenceUsage: true,
		Args:         noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if intOnly {
				return fmt.Errorf("test: %w: there is no interpreter to test", ippc.ErrUsage)
			}
			logger := newLogger(cmd)

			var options []renderer.Option
			if title != "" {
				options = append(options, renderer.WithTitle(title))
			}
			options = append(options, renderer.WithFailuresOnly(failuresOnly))
			r, err := renderer.New(options...)
			if err != nil {
				return errors.Join(ippc.ErrUsage, err)
			}

			runner := harness.NewRunner(logger)
			runner.SetCreateMissing(createMissing)
			if dbPath != "" {
				s, err := store.NewStoreWithConfig(cmd.Context(), store.StoreConfig{Path: dbPath, InitSchema: true})
				if err != nil {
					return err
				}
				atexit.Register(func() {
					if err := s.Close(); err != nil {
						log.Printf("test: close %s: %v\n", dbPath, err)
					}
				})
				runner.SetStore(s)
			}

			started := time.Now()
			rpt, err := runner.RunDir(cmd.Context(), directory, recursive)
			if err != nil {
				return err
			}
			logger.Info("test: finished", "tests", len(rpt.Results), "passed", rpt.Passed(), "failed", rpt.Failed(), "elapsed", time.Since(started))

			var buf bytes.Buffer
			if err := r.Render(cmd.Context(), &buf, rpt); err != nil {
				return err
			}
			if htmlFile == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			return os.WriteFile(htmlFile, buf.Bytes(), 0o644)
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdServe() *cobra.Command {
	addr := ":8787"
	var dbPath string
	var timeout time.Duration
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&addr, "addr", addr, "HTTP listen address")
		cmd.Flags().StringVar(&dbPath, "db", dbPath, "SQLite database file path (empty = in-memory)")
		cmd.Flags().DurationVar(&timeout, "timeout", timeout, "auto-shutdown after duration (e.g., 5s, 1m)")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "serve",
		Short:        "browse stored test runs and compile sources over HTTP",
		SilenceUsage: true,
		Args:         noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)

			if dbPath != "" {
				log.Printf("store: using file-based SQLite: %s", dbPath)
			} else {
				log.Printf("store: using in-memory SQLite")
			}
			s, err := store.NewStoreWithConfig(cmd.Context(), store.StoreConfig{Path: dbPath, InitSchema: true})
			if err != nil {
				return fmt.Errorf("failed to create SQLite store: %w", err)
			}
			defer s.Close()

			r, err := renderer.New()
			if err != nil {
				return err
			}
			h := handlers.New(s, r, logger)

			mux := http.NewServeMux()
			mux.HandleFunc("/", h.Index)
			mux.HandleFunc("/runs/{id}", h.Run)
			mux.HandleFunc("/compile", h.Compile)

			server := &http.Server{
				Addr:         addr,
				Handler:      mux,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

			if timeout > 0 {
				go func() {
					log.Printf("server: will auto-shutdown in %v", timeout)
					time.Sleep(timeout)
					log.Printf("server: timeout reached, initiating shutdown")
					shutdown <- os.Interrupt
				}()
			}

			go func() {
				log.Printf("server: listening on %s", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Printf("server: %v", err)
					shutdown <- syscall.SIGTERM
				}
			}()

			<-shutdown
			log.Printf("server: shutting down gracefully")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server: shutdown error: %w", err)
			}

			log.Printf("server: stopped")
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdVersion() *cobra.Command {
	showBuildInfo := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
		return nil
	}
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Fprintln(cmd.OutOrStdout(), ippc.Version().String())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ippc.Version().Core())
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}
