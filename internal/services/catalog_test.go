package services

import (
	"context"
	"testing"

	"github.com/diewo77/go-freelance/internal/models"
	"github.com/stretchr/testify/require"
)

func TestSearch_CombinesCriteria(t *testing.T) {
	d := newTestDB(t)
	svc := NewCatalogService(d, newTestFiles(t), 1<<20)
	ctx := context.Background()
	owner := mustUser(t, d, "owner")

	mustProject(t, d, owner, "Logo Design", 600)
	mustProject(t, d, owner, "Design Review", 400)
	mustProject(t, d, owner, "Backend API", 700)

	c, err := svc.ParseSearch(ctx, SearchInput{Name: "design", Salary: "500"})
	require.NoError(t, err)
	got, err := svc.Search(ctx, c)
	require.NoError(t, err)
	require.Equal(t, []string{"Logo Design"}, projectNames(got))

	all, err := svc.Search(ctx, Criteria{})
	require.NoError(t, err)
	require.Equal(t, []string{"Logo Design", "Design Review", "Backend API"}, projectNames(all))
}

func TestSearch_ModalityAndCategory(t *testing.T) {
	d := newTestDB(t)
	svc := NewCatalogService(d, newTestFiles(t), 1<<20)
	ctx := context.Background()
	owner := mustUser(t, d, "owner")

	mustProject(t, d, owner, "Remote design", 100)
	onsite := mustProject(t, d, owner, "Onsite dev", 100)
	require.NoError(t, d.Model(onsite).Updates(map[string]any{
		"modality_id": lookupID(t, d, &models.Modality{}, "on-site"),
		"category_id": lookupID(t, d, &models.Category{}, "development"),
	}).Error)

	c, err := svc.ParseSearch(ctx, SearchInput{Modality: "on-site"})
	require.NoError(t, err)
	got, err := svc.Search(ctx, c)
	require.NoError(t, err)
	require.Equal(t, []string{"Onsite dev"}, projectNames(got))

	c, err = svc.ParseSearch(ctx, SearchInput{Modality: "remote", Category: "development"})
	require.NoError(t, err)
	got, err = svc.Search(ctx, c)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSearch_LikeWildcardsAreLiteral(t *testing.T) {
	d := newTestDB(t)
	svc := NewCatalogService(d, newTestFiles(t), 1<<20)
	ctx := context.Background()
	owner := mustUser(t, d, "owner")

	mustProject(t, d, owner, "100% remote", 10)
	mustProject(t, d, owner, "1000 words", 10)

	got, err := svc.Search(ctx, Criteria{Name: "100%"})
	require.NoError(t, err)
	require.Equal(t, []string{"100% remote"}, projectNames(got))

	got, err = svc.Search(ctx, Criteria{Name: "_"})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSearch_FoldsNonASCIICase(t *testing.T) {
	d := newTestDB(t)
	svc := NewCatalogService(d, newTestFiles(t), 1<<20)
	ctx := context.Background()
	owner := mustUser(t, d, "owner")

	mustProject(t, d, owner, "DISEÑO WEB", 300)
	mustProject(t, d, owner, "Übersetzung", 300)
	mustProject(t, d, owner, "Diseno plano", 300)

	for _, name := range []string{"diseño", "Diseño", "DISEÑO", "seÑo"} {
		got, err := svc.Search(ctx, Criteria{Name: name})
		require.NoError(t, err)
		require.Equal(t, []string{"DISEÑO WEB"}, projectNames(got), name)
	}

	got, err := svc.Search(ctx, Criteria{Name: "übers"})
	require.NoError(t, err)
	require.Equal(t, []string{"Übersetzung"}, projectNames(got))
}

func TestParseSearch_Invalid(t *testing.T) {
	d := newTestDB(t)
	svc := NewCatalogService(d, newTestFiles(t), 1<<20)

	_, err := svc.ParseSearch(context.Background(), SearchInput{Modality: "underwater", Salary: "-5"})
	v := Violations(err)
	require.Equal(t, "invalid_choice", v["modality"])
	require.Equal(t, "must_not_be_negative", v["salary"])

	_, err = svc.ParseSearch(context.Background(), SearchInput{Salary: "lots"})
	require.Equal(t, "invalid_number", Violations(err)["salary"])
}

func TestCreateProject(t *testing.T) {
	d := newTestDB(t)
	svc := NewCatalogService(d, newTestFiles(t), 1<<20)
	ctx := context.Background()
	owner := mustUser(t, d, "owner")

	_, err := svc.Create(ctx, owner.ID, ProjectInput{Name: " ", Modality: "remote", Category: "nope", Salary: "x", Currency: "USD"})
	v := Violations(err)
	require.Equal(t, "required", v["name"])
	require.Equal(t, "invalid_choice", v["category"])
	require.Equal(t, "invalid_number", v["salary"])

	_, err = svc.Create(ctx, owner.ID, ProjectInput{Name: "Huge", Modality: "remote", Category: "design", Salary: "1e12", Currency: "USD"})
	require.Equal(t, "out_of_range", Violations(err)["salary"])

	p, err := svc.Create(ctx, owner.ID, ProjectInput{
		Name: "Landing page", Description: "One page", Modality: "hybrid", Category: "design",
		Salary: "1200,50", Currency: "eur",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, owner.ID, got.UserID)
	require.Equal(t, "hybrid", got.Modality.Slug)
	require.Equal(t, models.Money{Amount: 1200.5, Currency: "EUR"}, got.Salary)

	mine, err := svc.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	_, err = svc.Get(ctx, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}
