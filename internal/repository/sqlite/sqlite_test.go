package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
)

func newTestRepos(t *testing.T) (*Repositories, *sql.DB) {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := NewRepositories(db)
	ctx := context.Background()
	require.NoError(t, repos.Accounts.Init(ctx))
	require.NoError(t, repos.About.Init(ctx))
	require.NoError(t, repos.Projects.Init(ctx))
	require.NoError(t, repos.Technologies.Init(ctx))
	require.NoError(t, repos.Homepage.Init(ctx))
	require.NoError(t, repos.Contact.Init(ctx))
	return repos, db
}

func strPtr(s string) *string { return &s }

func TestAccountRepository_CreateAndLookup(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	acc := &domain.Account{Email: "admin@example.com", FullName: "Admin User", PasswordHash: "hash"}
	id, err := repos.Accounts.Create(ctx, acc)
	require.NoError(t, err)
	assert.Equal(t, id, acc.ID)

	got, err := repos.Accounts.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Admin User", got.FullName)
	assert.Equal(t, "hash", got.PasswordHash)

	byID, err := repos.Accounts.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", byID.Email)

	_, err = repos.Accounts.GetByEmail(ctx, "ADMIN@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repos.Accounts.GetByID(ctx, id+100)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.Accounts.Create(ctx, &domain.Account{Email: "a@b.c", PasswordHash: "x"})
	require.NoError(t, err)
	_, err = repos.Accounts.Create(ctx, &domain.Account{Email: "a@b.c", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAccountRepository_UpdateFirstListDeleteAll(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.Accounts.First(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	first := &domain.Account{Email: "one@example.com", PasswordHash: "h1"}
	_, err = repos.Accounts.Create(ctx, first)
	require.NoError(t, err)
	_, err = repos.Accounts.Create(ctx, &domain.Account{Email: "two@example.com", PasswordHash: "h2"})
	require.NoError(t, err)

	got, err := repos.Accounts.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	got.Email = "renamed@example.com"
	got.FullName = "Renamed"
	require.NoError(t, repos.Accounts.Update(ctx, got))

	reloaded, err := repos.Accounts.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed@example.com", reloaded.Email)
	assert.Equal(t, "Renamed", reloaded.FullName)

	missing := &domain.Account{ID: 999, Email: "x@example.com"}
	assert.ErrorIs(t, repos.Accounts.Update(ctx, missing), repository.ErrNotFound)

	all, err := repos.Accounts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	n, err := repos.Accounts.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestAboutRepository_LatestAndPatch(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.About.Latest(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	about := &domain.About{Content: "hello", Skills: []string{"Go", "SQL"}, ExperienceYears: 3}
	_, err = repos.About.Create(ctx, about)
	require.NoError(t, err)

	years := 7
	require.NoError(t, repos.About.Patch(ctx, about.ID, domain.AboutPatch{ExperienceYears: &years}))

	got, err := repos.About.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, []string{"Go", "SQL"}, got.Skills)
	assert.Equal(t, 7, got.ExperienceYears)

	require.NoError(t, repos.About.Patch(ctx, about.ID, domain.AboutPatch{Skills: []string{}}))
	got, err = repos.About.Get(ctx, about.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Skills)
	assert.NotNil(t, got.Skills)

	assert.ErrorIs(t, repos.About.Patch(ctx, 404, domain.AboutPatch{}), repository.ErrNotFound)

	n, err := repos.About.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestProjectRepository_CRUD(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	list, err := repos.Projects.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	p := &domain.Project{
		Title:        "Portfolio",
		Description:  strPtr("site"),
		Technologies: []string{"Go"},
		Featured:     true,
	}
	_, err = repos.Projects.Create(ctx, p)
	require.NoError(t, err)

	got, err := repos.Projects.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "site", *got.Description)
	assert.Nil(t, got.ImageURL)
	assert.True(t, got.Featured)
	assert.Equal(t, []string{"Go"}, got.Technologies)

	featured := false
	require.NoError(t, repos.Projects.Patch(ctx, p.ID, domain.ProjectPatch{
		Title:    strPtr("Renamed"),
		Featured: &featured,
	}))
	got, err = repos.Projects.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.False(t, got.Featured)
	assert.Equal(t, "site", *got.Description)

	require.NoError(t, repos.Projects.Delete(ctx, p.ID))
	assert.ErrorIs(t, repos.Projects.Delete(ctx, p.ID), repository.ErrNotFound)
	_, err = repos.Projects.Get(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_ListNewestFirst(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := repos.Projects.Create(ctx, &domain.Project{Title: title})
		require.NoError(t, err)
	}

	list, err := repos.Projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "first", list[2].Title)
}

func TestTechnologyRepository_ListOrderedByName(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	for _, name := range []string{"Vue", "Go", "PostgreSQL"} {
		_, err := repos.Technologies.Create(ctx, &domain.Technology{Name: name, Category: "x"})
		require.NoError(t, err)
	}

	list, err := repos.Technologies.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Vue"}, []string{list[0].Name, list[1].Name, list[2].Name})

	require.NoError(t, repos.Technologies.Patch(ctx, list[0].ID, domain.TechnologyPatch{Color: strPtr("#00ADD8")}))
	got, err := repos.Technologies.Get(ctx, list[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got.Color)
	assert.Equal(t, "#00ADD8", *got.Color)
	assert.Nil(t, got.Icon)
}

func TestHomepageRepository_SetCVPath(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	settings := &domain.HomepageSettings{BannerTitle: strPtr("Hi")}
	_, err := repos.Homepage.Create(ctx, settings)
	require.NoError(t, err)

	require.NoError(t, repos.Homepage.SetCVPath(ctx, settings.ID, strPtr("/static/cv.pdf")))
	got, err := repos.Homepage.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, got.CVFilePath)
	assert.Equal(t, "/static/cv.pdf", *got.CVFilePath)

	require.NoError(t, repos.Homepage.Patch(ctx, settings.ID, domain.HomepagePatch{BannerSubtitle: strPtr("sub")}))
	require.NoError(t, repos.Homepage.SetCVPath(ctx, settings.ID, nil))

	got, err = repos.Homepage.Get(ctx, settings.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CVFilePath)
	assert.Equal(t, "Hi", *got.BannerTitle)
	assert.Equal(t, "sub", *got.BannerSubtitle)
}

func TestContactRepository_InfoAndSubmissions(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.Contact.LatestInfo(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	info := &domain.ContactInfo{Email: strPtr("me@example.com")}
	_, err = repos.Contact.CreateInfo(ctx, info)
	require.NoError(t, err)
	require.NoError(t, repos.Contact.PatchInfo(ctx, info.ID, domain.ContactInfoPatch{Phone: strPtr("+1")}))

	gotInfo, err := repos.Contact.LatestInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", *gotInfo.Email)
	assert.Equal(t, "+1", *gotInfo.Phone)

	for _, name := range []string{"Ann", "Bob"} {
		_, err := repos.Contact.CreateSubmission(ctx, &domain.ContactSubmission{Name: name, Email: "x@example.com", Message: "hi"})
		require.NoError(t, err)
	}

	subs, err := repos.Contact.ListSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Bob", subs[0].Name)
	assert.Nil(t, subs[0].Phone)

	require.NoError(t, repos.Contact.DeleteSubmission(ctx, subs[0].ID))
	_, err = repos.Contact.GetSubmission(ctx, subs[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repos.Contact.DeleteSubmission(ctx, subs[0].ID), repository.ErrNotFound)
}

func TestMaintenanceRepository_CompactSingleton(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	var last int64
	for _, content := range []string{"a", "b", "c"} {
		id, err := repos.About.Create(ctx, &domain.About{Content: content})
		require.NoError(t, err)
		last = id
	}

	n, err := repos.Maintenance.CompactSingleton(ctx, "about")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err := repos.About.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, last, got.ID)
	assert.Equal(t, "c", got.Content)

	_, err = repos.Maintenance.CompactSingleton(ctx, "projects")
	assert.ErrorIs(t, err, ErrNotSingleton)
}

func TestMaintenanceRepository_Tables(t *testing.T) {
	repos, _ := newTestRepos(t)

	tables, err := repos.Maintenance.Tables(context.Background())
	require.NoError(t, err)

	byName := map[string]repository.TableInfo{}
	for _, table := range tables {
		byName[table.Name] = table
	}
	for _, name := range []string{"profiles", "about", "projects", "technologies", "homepage_settings", "contact_info", "contact_submissions"} {
		assert.Contains(t, byName, name)
	}

	profiles := byName["profiles"]
	require.NotEmpty(t, profiles.Columns)
	assert.Equal(t, "id", profiles.Columns[0].Name)
	assert.True(t, profiles.Columns[0].PK)
}

func TestCount_PropagatesDriverError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM projects`).WillReturnError(errors.New("db down"))

	_, err = NewProjectRepository(db).Count(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count projects: db down")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_ScanErrorIsNotNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT id, email.*FROM profiles WHERE email = \?`).
		WithArgs("a@b.c").
		WillReturnError(errors.New("disk I/O error"))

	_, err = NewAccountRepository(db).GetByEmail(context.Background(), "a@b.c")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSubmission_ZeroRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM contact_submissions WHERE id = \?`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewContactRepository(db).DeleteSubmission(context.Background(), 5)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
