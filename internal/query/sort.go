package query

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ignatzorin/localhire/internal/models"
)

// SortKey задаёт порядок выдачи.
type SortKey string

const (
	SortNone   SortKey = ""
	SortRating SortKey = "rating"
	SortName   SortKey = "name"
	SortPrice  SortKey = "price"
	SortNewest SortKey = "newest"
)

// SortFunc возвращает новый упорядоченный срез, не трогая исходный.
type SortFunc[T any] func(items []T, key SortKey) []T

// sortStable сортирует копию среза стабильно:
// равные ключи сохраняют исходный порядок.
func sortStable[T any](items []T, less func(a, b T) int) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	slices.SortStableFunc(out, less)
	return out
}

// SortJobs оставляет вакансии в исходном порядке: для них сортировка не выбирается.
func SortJobs(items []models.Job, _ SortKey) []models.Job {
	out := slices.Clone(items)
	if out == nil {
		out = []models.Job{}
	}
	return out
}

// SortArtisans сортирует мастеров по рейтингу (по убыванию) или по имени.
func SortArtisans(items []models.Artisan, key SortKey) []models.Artisan {
	switch key {
	case SortName:
		// collate.Collator нельзя делить между горутинами.
		col := collate.New(language.English)
		return sortStable(items, func(a, b models.Artisan) int {
			return col.CompareString(a.Name, b.Name)
		})
	default:
		return sortStable(items, func(a, b models.Artisan) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	}
}

// SortProducts сортирует товары по цене (по возрастанию) или по новизне.
func SortProducts(items []models.Product, key SortKey) []models.Product {
	switch key {
	case SortPrice:
		return sortStable(items, func(a, b models.Product) int {
			return cmp.Compare(priceKey(a.Price), priceKey(b.Price))
		})
	default:
		return sortStable(items, func(a, b models.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

// priceKey отправляет нераспознанные цены в конец выдачи.
func priceKey(display string) float64 {
	v, ok := ParsePrice(display)
	if !ok {
		return math.Inf(1)
	}
	return v
}

// ParsePrice извлекает число из строки вида "₦50,000" или "$1,250.50".
// Символ валюты, пробелы и разделители тысяч отбрасываются.
func ParsePrice(display string) (float64, bool) {
	s := strings.TrimSpace(display)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	if i := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != ',' && !unicode.IsSpace(r)
	}); i >= 0 {
		s = s[:i]
	}
	s = strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
