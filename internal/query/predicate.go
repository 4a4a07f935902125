package query

import (
	"strings"

	"github.com/ignatzorin/localhire/internal/models"
)

// Filter хранит значения фильтров, выбранные пользователем.
// Пустое поле означает, что фильтр не активен.
type Filter struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`
	Skill    string `json:"skill,omitempty"`
}

// Normalize убирает пробелы по краям всех значений.
func (f Filter) Normalize() Filter {
	return Filter{
		Search:   strings.TrimSpace(f.Search),
		Category: strings.TrimSpace(f.Category),
		Location: strings.TrimSpace(f.Location),
		Skill:    strings.TrimSpace(f.Skill),
	}
}

// IsEmpty сообщает, что ни один фильтр не активен.
func (f Filter) IsEmpty() bool {
	f = f.Normalize()
	return f.Search == "" && f.Category == "" && f.Location == "" && f.Skill == ""
}

// Contains проверяет вхождение подстроки без учёта регистра.
// Пустая подстрока совпадает с любым значением.
func Contains(field, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(needle))
}

// AnyContains возвращает true, если хотя бы одно значение содержит подстроку.
func AnyContains(values []string, needle string) bool {
	if strings.TrimSpace(needle) == "" {
		return true
	}
	for _, v := range values {
		if Contains(v, needle) {
			return true
		}
	}
	return false
}

// searchMatches применяет поиск по двум полям через ИЛИ.
func searchMatches(needle, primary, secondary string) bool {
	if strings.TrimSpace(needle) == "" {
		return true
	}
	return Contains(primary, needle) || Contains(secondary, needle)
}

// MatchJob проверяет вакансию: поиск по названию или категории.
// Фильтра по навыку у вакансий нет.
func MatchJob(j models.Job, f Filter) bool {
	return Contains(j.Category, f.Category) &&
		Contains(j.Location, f.Location) &&
		searchMatches(f.Search, j.Title, j.Category)
}

// MatchArtisan проверяет мастера. Категория сверяется с его специальностью.
func MatchArtisan(a models.Artisan, f Filter) bool {
	return Contains(a.Title, f.Category) &&
		Contains(a.Location, f.Location) &&
		AnyContains(a.Skills, f.Skill) &&
		searchMatches(f.Search, a.Name, a.Title)
}

// MatchProduct проверяет товар. Фильтр по навыку к товарам не применяется.
func MatchProduct(p models.Product, f Filter) bool {
	return Contains(p.Category, f.Category) &&
		Contains(p.Location, f.Location) &&
		searchMatches(f.Search, p.Title, p.Category)
}
