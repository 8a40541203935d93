package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/extracto/internal/adapter/http/dto"
	"github.com/iho/extracto/internal/adapter/repository/memory"
	"github.com/iho/extracto/internal/adapter/source/csvfile"
	"github.com/iho/extracto/internal/domain"
	"github.com/iho/extracto/internal/infrastructure/idgen"
	"github.com/iho/extracto/internal/infrastructure/logger"
	"github.com/iho/extracto/internal/usecase"
)

// cliOptions holds the flags shared by the file commands.
type cliOptions struct {
	skipRows       int
	openingBalance string
	encodings      []string
	logLevel       string
	baseURL        string
	timeout        time.Duration
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "extracto",
		Short: "Bank statement normalizer",
		Long: `Reads a bank statement CSV export of unknown encoding and delimiter,
and prints the normalized ledger with its running balance.`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&opts.skipRows, "skip-rows", domain.DefaultSkipRows, "Preamble lines before the header row")
	flags.StringVar(&opts.openingBalance, "opening-balance", "0", "Balance before the first transaction")
	flags.StringSliceVar(&opts.encodings, "encodings", csvfile.DefaultEncodings, "Text encodings to try, in order")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level for diagnostics on stderr")

	rootCmd.AddCommand(
		normalizeCmd(opts),
		summaryCmd(opts),
		searchCmd(opts),
		statusCmd(opts),
	)

	return rootCmd
}

func normalizeCmd(opts *cliOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "normalize FILE",
		Short: "Print every transaction with its running balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, stmt, err := loadStatement(cmd.Context(), opts, args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format {
			case "json":
				return printJSON(w, statementOutput{
					Statement:    dto.StatementFromDomain(stmt),
					Transactions: dto.TransactionsFromDomain(stmt.Ledger.Transactions()),
				})
			case "csv":
				return writeCSV(w, stmt.Ledger.Transactions())
			case "table":
				printTransactions(w, stmt.Ledger.Transactions())
				printReport(w, stmt.Report)
				return nil
			default:
				return fmt.Errorf("unknown format %q (want table, json or csv)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or csv")

	return cmd
}

func summaryCmd(opts *cliOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "summary FILE",
		Short: "Print income, expense and net totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, stmt, err := loadStatement(cmd.Context(), opts, args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			summary, err := uc.Summary(cmd.Context(), query)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), summary, stmt.FinalBalance())
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Only count transactions matching this text")

	return cmd
}

func searchCmd(opts *cliOptions) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "search FILE QUERY",
		Short: "List transactions matching QUERY, newest first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _, err := loadStatement(cmd.Context(), opts, args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			result, err := uc.Search(cmd.Context(), usecase.SearchInput{
				Query:  args[1],
				Limit:  limit,
				Offset: offset,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printTransactions(w, result.Transactions)
			fmt.Fprintf(w, "%d of %d matching transactions\n", len(result.Transactions), result.Total)
			printSummary(w, result.Summary, result.FinalBalance)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultPageSize, "Maximum rows to print")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")

	return cmd
}

// loadStatement runs a file through the same pipeline the server uses.
func loadStatement(ctx context.Context, opts *cliOptions, path string, errOut io.Writer) (*usecase.StatementUseCase, *domain.Statement, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	log := logger.NewWithWriter(logger.Config{Level: opts.logLevel, Format: "console"}, errOut)

	opening, err := domain.ParseOpeningBalance(opts.openingBalance)
	if err != nil {
		return nil, nil, err
	}

	parser, err := csvfile.NewParser(csvfile.Options{
		SkipRows:       opts.skipRows,
		Encodings:      opts.encodings,
		OpeningBalance: opening,
	}, log)
	if err != nil {
		return nil, nil, err
	}

	uc := usecase.NewStatementUseCase(
		csvfile.NewFileSource(path),
		parser,
		memory.NewStatementStore(),
		nil,
		idgen.NewULIDGenerator(),
		nil,
		log,
	)

	stmt, err := uc.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	return uc, stmt, nil
}
