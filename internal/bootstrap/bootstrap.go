// Package bootstrap prepares a database for serving: schema, seed content and
// the admin account.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository/sqlite"
	"portfolio-api/internal/service"
)

// Options controls a bootstrap run.
type Options struct {
	Seed  bool
	Admin service.AdminSpec
	// SyncAdmin rewrites an existing admin account to match Admin. Without
	// it the admin is only created when the accounts table is empty.
	SyncAdmin bool
}

// Result reports what a run changed.
type Result struct {
	Seeded       []string
	Admin        *domain.Account
	AdminCreated bool
}

type Bootstrapper struct {
	repos    *sqlite.Repositories
	accounts service.AccountService
	logger   logrus.FieldLogger
}

func New(repos *sqlite.Repositories, accounts service.AccountService, logger logrus.FieldLogger) *Bootstrapper {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Bootstrapper{repos: repos, accounts: accounts, logger: logger}
}

// InitSchema creates every table that does not exist yet.
func (b *Bootstrapper) InitSchema(ctx context.Context) error {
	steps := []struct {
		name string
		init func(context.Context) error
	}{
		{"accounts", b.repos.Accounts.Init},
		{"about", b.repos.About.Init},
		{"projects", b.repos.Projects.Init},
		{"technologies", b.repos.Technologies.Init},
		{"homepage", b.repos.Homepage.Init},
		{"contact", b.repos.Contact.Init},
	}
	for _, step := range steps {
		if err := step.init(ctx); err != nil {
			return fmt.Errorf("init %s repository: %w", step.name, err)
		}
	}
	return nil
}

// Run initialises the schema, seeds empty tables when asked to and provisions
// the admin account.
func (b *Bootstrapper) Run(ctx context.Context, opts Options) (Result, error) {
	var res Result
	if err := b.InitSchema(ctx); err != nil {
		return res, err
	}

	if opts.Seed {
		seeded, err := b.seed(ctx)
		if err != nil {
			return res, err
		}
		res.Seeded = seeded
	}

	provision := b.accounts.ProvisionAdmin
	if opts.SyncAdmin {
		provision = b.accounts.EnsureAdmin
	}
	admin, created, err := provision(ctx, opts.Admin)
	if err != nil {
		return res, fmt.Errorf("ensure admin: %w", err)
	}
	res.Admin = admin
	res.AdminCreated = created

	entry := b.logger.WithField("email", admin.Email)
	switch {
	case created:
		entry.Info("created admin account")
	case opts.SyncAdmin:
		entry.Info("updated admin account")
	default:
		entry.Debug("admin account exists; leaving it unchanged")
	}
	return res, nil
}

func (b *Bootstrapper) seed(ctx context.Context) ([]string, error) {
	var seeded []string

	steps := []struct {
		name  string
		count func(context.Context) (int64, error)
		fill  func(context.Context) error
	}{
		{"homepage_settings", b.repos.Homepage.Count, func(ctx context.Context) error {
			settings := seedHomepage()
			_, err := b.repos.Homepage.Create(ctx, &settings)
			return err
		}},
		{"contact_info", b.repos.Contact.CountInfo, func(ctx context.Context) error {
			info := seedContactInfo()
			_, err := b.repos.Contact.CreateInfo(ctx, &info)
			return err
		}},
		{"about", b.repos.About.Count, func(ctx context.Context) error {
			about := seedAbout()
			_, err := b.repos.About.Create(ctx, &about)
			return err
		}},
		{"technologies", b.repos.Technologies.Count, func(ctx context.Context) error {
			for _, tech := range seedTechnologies() {
				if _, err := b.repos.Technologies.Create(ctx, &tech); err != nil {
					return err
				}
			}
			return nil
		}},
		{"projects", b.repos.Projects.Count, func(ctx context.Context) error {
			for _, project := range seedProjects() {
				if _, err := b.repos.Projects.Create(ctx, &project); err != nil {
					return err
				}
			}
			return nil
		}},
	}

	for _, step := range steps {
		n, err := step.count(ctx)
		if err != nil {
			return seeded, fmt.Errorf("count %s: %w", step.name, err)
		}
		if n > 0 {
			continue
		}
		if err := step.fill(ctx); err != nil {
			return seeded, fmt.Errorf("seed %s: %w", step.name, err)
		}
		b.logger.WithField("table", step.name).Info("seeded default content")
		seeded = append(seeded, step.name)
	}
	return seeded, nil
}
