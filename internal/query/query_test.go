package query

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/localhire/internal/models"
)

func artisans() []models.Artisan {
	return []models.Artisan{
		{ID: uuid.New(), Name: "Ikenna Kenneth", Title: "Fashion Designer", Location: "Agege", Rating: 4.8, Skills: []string{"Tailoring", "Pattern Making"}},
		{ID: uuid.New(), Name: "Susana Elijah Archibong", Title: "Hospitality Expert", Location: "Lagos", Rating: 4.5, Skills: []string{"Event Planning"}},
		{ID: uuid.New(), Name: "Josephine Grace Owuama", Title: "Fashion Stylist", Location: "Ikotun", Rating: 4.2, Skills: []string{"Styling"}},
		{ID: uuid.New(), Name: "Samuel Udoakah", Title: "Sales and Marketing Expert", Location: "Port Harcourt", Rating: 4.7, Skills: []string{"Sales"}},
		{ID: uuid.New(), Name: "Amaka Nwosu", Title: "Fashion Designer", Location: "Lagos", Rating: 4.9, Skills: []string{"Tailoring"}},
	}
}

func names(items []models.Artisan) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.Name)
	}
	return out
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func products() []models.Product {
	return []models.Product{
		{ID: uuid.New(), Title: "Handmade Dress", Category: "Fashion", Location: "Lagos", Price: "₦50,000", CreatedAt: day("2025-05-30")},
		{ID: uuid.New(), Title: "Luxury Dinner Set", Category: "Hospitality", Location: "Port Harcourt", Price: "₦80,000", CreatedAt: day("2025-05-28")},
		{ID: uuid.New(), Title: "Marketing Guide Book", Category: "Sales and Marketing", Location: "Agege", Price: "₦20,000", CreatedAt: day("2025-05-25")},
		{ID: uuid.New(), Title: "Custom Necklace", Category: "Fashion", Location: "Ikotun", Price: "₦30,000", CreatedAt: day("2025-05-29")},
		{ID: uuid.New(), Title: "Sales Training Kit", Category: "Sales and Marketing", Location: "Lagos", Price: "₦45,000", CreatedAt: day("2025-05-27")},
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("Port Harcourt", "Port Harcourt"))
	assert.True(t, Contains("Port Harcourt", "port harcourt"))
	assert.True(t, Contains("Port Harcourt", "PORT HARCOURT"))
	assert.True(t, Contains("Port Harcourt", "harc"))
	assert.True(t, Contains("anything", ""))
	assert.True(t, Contains("anything", "   "))
	assert.False(t, Contains("Lagos", "Abuja"))
}

func TestMatch(t *testing.T) {
	a := artisans()[0]

	t.Run("категория сверяется со специальностью", func(t *testing.T) {
		assert.True(t, MatchArtisan(a, Filter{Category: "fashion"}))
		assert.False(t, MatchArtisan(a, Filter{Category: "hospitality"}))
	})

	t.Run("навык", func(t *testing.T) {
		assert.True(t, MatchArtisan(a, Filter{Skill: "pattern"}))
		assert.False(t, MatchArtisan(a, Filter{Skill: "welding"}))
	})

	t.Run("поиск по имени или специальности", func(t *testing.T) {
		assert.True(t, MatchArtisan(a, Filter{Search: "ikenna"}))
		assert.True(t, MatchArtisan(a, Filter{Search: "designer"}))
		assert.False(t, MatchArtisan(a, Filter{Search: "plumber"}))
	})

	t.Run("навык не влияет на товары", func(t *testing.T) {
		p := products()[0]
		assert.True(t, MatchProduct(p, Filter{Skill: "anything"}))
	})

	t.Run("вакансии", func(t *testing.T) {
		j := models.Job{Title: "Fashion Designer", Category: "Fashion", Location: "Lagos", Skills: []string{"Sewing"}}
		assert.True(t, MatchJob(j, Filter{Search: "fashion", Location: "lagos"}))
		assert.True(t, MatchJob(j, Filter{Skill: "underwater welding"}))
		assert.False(t, MatchJob(j, Filter{Category: "Sales"}))
	})
}

func TestSortArtisans(t *testing.T) {
	t.Run("по рейтингу, по убыванию", func(t *testing.T) {
		sorted := SortArtisans(artisans(), SortRating)
		for i := 1; i < len(sorted); i++ {
			assert.GreaterOrEqual(t, sorted[i-1].Rating, sorted[i].Rating)
		}
		assert.Equal(t, "Amaka Nwosu", sorted[0].Name)
	})

	t.Run("равный рейтинг сохраняет исходный порядок", func(t *testing.T) {
		items := []models.Artisan{
			{Name: "B", Rating: 4.5},
			{Name: "A", Rating: 4.5},
			{Name: "C", Rating: 4.9},
		}
		assert.Equal(t, []string{"C", "B", "A"}, names(SortArtisans(items, SortRating)))
	})

	t.Run("по имени", func(t *testing.T) {
		items := []models.Artisan{{Name: "susana"}, {Name: "Amaka"}, {Name: "Ikenna"}}
		assert.Equal(t, []string{"Amaka", "Ikenna", "susana"}, names(SortArtisans(items, SortName)))
	})

	t.Run("исходный срез не меняется", func(t *testing.T) {
		items := artisans()
		before := names(items)
		_ = SortArtisans(items, SortRating)
		assert.Equal(t, before, names(items))
	})
}

func TestSortProducts(t *testing.T) {
	t.Run("по цене, по возрастанию", func(t *testing.T) {
		sorted := SortProducts(products(), SortPrice)
		prev := -1.0
		for _, p := range sorted {
			price, ok := ParsePrice(p.Price)
			require.True(t, ok)
			assert.GreaterOrEqual(t, price, prev)
			prev = price
		}
	})

	t.Run("нераспознанная цена в конце", func(t *testing.T) {
		items := []models.Product{{Title: "free", Price: "Contact seller"}, {Title: "cheap", Price: "₦1,000"}}
		sorted := SortProducts(items, SortPrice)
		assert.Equal(t, "cheap", sorted[0].Title)
	})

	t.Run("по новизне", func(t *testing.T) {
		sorted := SortProducts(products(), SortNewest)
		assert.Equal(t, "Handmade Dress", sorted[0].Title)
		assert.Equal(t, "Marketing Guide Book", sorted[len(sorted)-1].Title)
	})
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"₦50,000", 50000, true},
		{"₦200,000/month", 200000, true},
		{"₦1,250,000", 1250000, true},
		{"$1,250.50", 1250.5, true},
		{"  45000 ", 45000, true},
		{"Negotiable", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePrice(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, 3, TotalPages(len(items), 3))
	assert.Equal(t, 1, TotalPages(0, 3))
	assert.Equal(t, []int{7}, Paginate(items, 3, 3))
	assert.Empty(t, Paginate(items, 3, 4))
	assert.Empty(t, Paginate(items, 3, 0))

	t.Run("все страницы восстанавливают последовательность", func(t *testing.T) {
		for size := 1; size <= len(items)+1; size++ {
			var all []int
			for page := 1; page <= TotalPages(len(items), size); page++ {
				all = append(all, Paginate(items, size, page)...)
			}
			assert.Equal(t, items, all, "size=%d", size)
		}
	})
}

func TestFeatured(t *testing.T) {
	top := TopRated(artisans(), models.TopRatedThreshold, models.FeaturedLimit)
	assert.Equal(t, []string{"Ikenna Kenneth", "Susana Elijah Archibong", "Samuel Udoakah"}, names(top))
	assert.Empty(t, TopRated(artisans(), models.TopRatedThreshold, 0))

	first := FirstN(products(), 3)
	assert.Len(t, first, 3)
	assert.Len(t, FirstN(products()[:2], 3), 2)
}

func TestReduce(t *testing.T) {
	s := NewState(SortRating)

	t.Run("фильтр сбрасывает страницу", func(t *testing.T) {
		s := s
		s.Page = 3
		next := Reduce(s, Action{Type: ActionSetLocation, Value: "Lagos"}, SortRating, 5)
		assert.Equal(t, 1, next.Page)
		assert.Equal(t, "Lagos", next.Filter.Location)
	})

	t.Run("переходы за границы отклоняются", func(t *testing.T) {
		assert.Equal(t, s, Reduce(s, Action{Type: ActionPrevPage}, SortRating, 2))
		last := Reduce(s, Action{Type: ActionGoToPage, Page: 2}, SortRating, 2)
		assert.Equal(t, 2, last.Page)
		assert.Equal(t, last, Reduce(last, Action{Type: ActionNextPage}, SortRating, 2))
		assert.Equal(t, s, Reduce(s, Action{Type: ActionGoToPage, Page: 3}, SortRating, 2))
	})

	t.Run("сброс", func(t *testing.T) {
		dirty := State{Filter: Filter{Search: "x"}, Sort: SortName, Page: 2}
		assert.Equal(t, s, Reduce(dirty, Action{Type: ActionReset}, SortRating, 2))
	})

	t.Run("неизвестное действие", func(t *testing.T) {
		assert.False(t, ActionType("bogus").Valid())
		assert.True(t, ActionNextPage.Valid())
		assert.Equal(t, s, Reduce(s, Action{Type: "bogus"}, SortRating, 2))
	})
}

func TestPipeline(t *testing.T) {
	p := NewPipeline(artisans(), ArtisanSpec(2))

	t.Run("Lagos по рейтингу", func(t *testing.T) {
		s := p.Reduce(p.Initial(), Action{Type: ActionSetLocation, Value: "Lagos"})
		res := p.Run(s)
		assert.Equal(t, []string{"Amaka Nwosu", "Susana Elijah Archibong"}, names(res.Items))
		assert.Equal(t, 1, res.TotalPages)
		assert.Empty(t, res.Message)
	})

	t.Run("пустая выдача", func(t *testing.T) {
		s := p.Reduce(p.Initial(), Action{Type: ActionSetSkill, Value: "underwater welding"})
		res := p.Run(s)
		assert.Empty(t, res.Items)
		assert.Equal(t, NoResultsMessage, res.Message)
		assert.Equal(t, 1, res.TotalPages)
	})

	t.Run("неизвестная сортировка", func(t *testing.T) {
		s := p.Reduce(p.Initial(), Action{Type: ActionSetSort, Value: "price"})
		assert.Equal(t, SortRating, s.Sort)
	})

	t.Run("переход по страницам", func(t *testing.T) {
		s := p.Initial()
		s = p.Reduce(s, Action{Type: ActionNextPage})
		s = p.Reduce(s, Action{Type: ActionNextPage})
		res := p.Run(s)
		assert.Equal(t, 3, res.Page)
		assert.False(t, res.HasNext)
		assert.True(t, res.HasPrev)
		assert.Equal(t, s, p.Reduce(s, Action{Type: ActionNextPage}))
	})

	t.Run("Normalize ограничивает страницу", func(t *testing.T) {
		s := p.Normalize(State{Page: 42, Sort: "bogus"})
		assert.Equal(t, 3, s.Page)
		assert.Equal(t, SortRating, s.Sort)
	})

	t.Run("Run прижимает страницу к границам", func(t *testing.T) {
		res := p.Run(State{Page: 9})
		assert.Equal(t, 3, res.Page)
		assert.Equal(t, 5, res.Total)
		assert.Equal(t, names(p.Run(State{Page: 3}).Items), names(res.Items))
		assert.NotEmpty(t, res.Items)
		assert.Empty(t, res.Message)
		assert.False(t, res.HasNext)

		res = p.Run(State{Page: 0})
		assert.Equal(t, 1, res.Page)
		assert.False(t, res.HasPrev)
	})

	t.Run("записи пайплайна не меняются", func(t *testing.T) {
		before := names(p.All())
		_ = p.Run(State{Sort: SortName, Page: 1})
		assert.Equal(t, before, names(p.All()))
	})
}
