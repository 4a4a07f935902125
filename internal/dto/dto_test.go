package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/localhire/internal/models"
	"github.com/ignatzorin/localhire/internal/query"
)

func TestNewProductView_IsNew(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, NewProductView(models.Product{CreatedAt: now.AddDate(0, 0, -2)}, now).IsNew)
	assert.True(t, NewProductView(models.Product{CreatedAt: now.Add(-models.NewProductWindow)}, now).IsNew)
	assert.False(t, NewProductView(models.Product{CreatedAt: now.AddDate(0, 0, -8)}, now).IsNew)
	assert.False(t, NewProductView(models.Product{CreatedAt: now.AddDate(0, 0, 1)}, now).IsNew)
}

func TestNewArtisanView_TopRated(t *testing.T) {
	assert.True(t, NewArtisanView(models.Artisan{Rating: 4.5}).TopRated)
	assert.False(t, NewArtisanView(models.Artisan{Rating: 4.4}).TopRated)
}

func TestListQuery_ToState(t *testing.T) {
	s := ListQuery{Search: "tailor", Sort: " Name ", Page: 0}.ToState()

	assert.Equal(t, "tailor", s.Filter.Search)
	assert.Equal(t, query.SortName, s.Sort)
	assert.Equal(t, 1, s.Page)
}

func TestJobPostingForm_ToPosting(t *testing.T) {
	posting := JobPostingForm{
		CompanyName: "Eko Hotels",
		ContactName: "Femi",
		Title:       "  Chef ",
		Skills:      "Baking, Grilling, baking",
	}.ToPosting()

	assert.Equal(t, "Eko Hotels", posting.Poster.Company)
	assert.Equal(t, "Chef", posting.Job.Title)
	assert.Equal(t, []string{"Baking", "Grilling"}, posting.Job.Skills)
}
