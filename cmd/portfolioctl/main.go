// Command portfolioctl runs maintenance tasks against the portfolio database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"portfolio-api/internal/bootstrap"
	"portfolio-api/internal/config"
	"portfolio-api/internal/maintenance"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/repository/sqlite"
	"portfolio-api/internal/service"
)

const usage = `usage: portfolioctl <command> [flags]

commands:
  init          create tables, seed empty tables and provision the admin account
  reset-admin   delete every account and create the admin afresh
  inspect       list tables, their columns and the accounts
  compact       keep only the newest row of each singleton table
`

// test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

var errUsage = errors.New("invalid usage")

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	logger := cfg.NewLogger()
	logger.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], cfg, logger, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		logger.Fatalf("portfolioctl: %v", err)
	}
}

func run(ctx context.Context, args []string, cfg config.Config, logger logrus.FieldLogger, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	repos := sqlite.NewRepositories(db)
	accounts := service.NewAccountService(repos.Accounts, cfg.Auth.BcryptCost)
	boot := bootstrap.New(repos, accounts, logger)

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "init":
		return runInit(ctx, rest, cfg, boot, out)
	case "reset-admin":
		return runResetAdmin(ctx, rest, cfg, boot, accounts, out)
	case "inspect":
		return runInspect(ctx, repos, accounts, out)
	case "compact":
		return runCompact(ctx, repos, logger, out)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func runInit(ctx context.Context, args []string, cfg config.Config, boot *bootstrap.Bootstrapper, out io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(out)
	seed := fs.Bool("seed", cfg.Database.Seed, "seed empty tables with default content")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	res, err := boot.Run(ctx, bootstrap.Options{
		Seed:      *seed,
		Admin:     adminSpec(cfg),
		SyncAdmin: true,
	})
	if err != nil {
		return err
	}

	for _, table := range res.Seeded {
		fmt.Fprintf(out, "seeded %s\n", table)
	}
	verb := "updated"
	if res.AdminCreated {
		verb = "created"
	}
	fmt.Fprintf(out, "%s admin account %s\n", verb, res.Admin.Email)
	return nil
}

func runResetAdmin(ctx context.Context, args []string, cfg config.Config, boot *bootstrap.Bootstrapper, accounts service.AccountService, out io.Writer) error {
	fs := flag.NewFlagSet("reset-admin", flag.ContinueOnError)
	fs.SetOutput(out)
	email := fs.String("email", cfg.Auth.AdminEmail, "admin email")
	name := fs.String("name", cfg.Auth.AdminName, "admin display name")
	prompt := fs.Bool("prompt", false, "read the password from the terminal")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	spec := adminSpec(cfg)
	spec.Email = *email
	spec.FullName = *name
	if *prompt || spec.Password == "" {
		password, err := promptPassword(out)
		if err != nil {
			return err
		}
		spec.Password = password
	}

	if err := boot.InitSchema(ctx); err != nil {
		return err
	}
	account, err := accounts.ResetAdmin(ctx, spec)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "admin account reset: %s (%s)\n", account.Email, account.FullName)
	return nil
}

func promptPassword(out io.Writer) (string, error) {
	if !isTerminal() {
		return "", errors.New("no admin password configured and stdin is not a terminal")
	}
	fmt.Fprint(out, "New admin password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(string(pw), "\r\n")
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	return password, nil
}

func runInspect(ctx context.Context, repos *sqlite.Repositories, accounts service.AccountService, out io.Writer) error {
	tables, err := repos.Maintenance.Tables(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	hasAccounts := false
	for _, table := range tables {
		if table.Name == "profiles" {
			hasAccounts = true
		}
		fmt.Fprintf(w, "%s\n", table.Name)
		for _, col := range table.Columns {
			var flags []string
			if col.PK {
				flags = append(flags, "pk")
			}
			if col.NotNull {
				flags = append(flags, "not null")
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\n", col.Name, col.Type, strings.Join(flags, ","))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !hasAccounts {
		fmt.Fprintln(out, "no accounts table; run `portfolioctl init` first")
		return nil
	}
	list, err := accounts.List(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\naccounts (%d)\n", len(list))
	for _, acc := range list {
		fmt.Fprintf(out, "  %d\t%s\t%s\n", acc.ID, acc.Email, acc.DisplayName)
	}
	return nil
}

func runCompact(ctx context.Context, repos *sqlite.Repositories, logger logrus.FieldLogger, out io.Writer) error {
	tables, err := repos.Maintenance.Tables(ctx)
	if err != nil {
		return err
	}
	present := make([]string, 0, len(sqlite.SingletonTables))
	for _, name := range sqlite.SingletonTables {
		if slices.ContainsFunc(tables, func(t repository.TableInfo) bool { return t.Name == name }) {
			present = append(present, name)
		}
	}

	compactor := maintenance.NewCompactor(repos.Maintenance, present, maintenance.WithLogger(logger))
	results, err := compactor.Run(ctx)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(out, "%s: failed: %v\n", r.Table, r.Err)
			continue
		}
		fmt.Fprintf(out, "%s: removed %d rows\n", r.Table, r.Removed)
	}
	return err
}

func adminSpec(cfg config.Config) service.AdminSpec {
	return service.AdminSpec{
		Email:    cfg.Auth.AdminEmail,
		Password: cfg.Auth.AdminPassword,
		FullName: cfg.Auth.AdminName,
	}
}
