package query

import "github.com/ignatzorin/localhire/internal/models"

// FirstN возвращает первые n элементов без учёта фильтров.
func FirstN[T any](items []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	n = min(n, len(items))
	out := make([]T, n)
	copy(out, items[:n])
	return out
}

// TopRated выбирает до limit мастеров с рейтингом не ниже threshold
// в исходном порядке каталога.
func TopRated(artisans []models.Artisan, threshold float64, limit int) []models.Artisan {
	if limit <= 0 {
		return []models.Artisan{}
	}
	out := make([]models.Artisan, 0, limit)
	for _, a := range artisans {
		if len(out) >= limit {
			break
		}
		if a.Rating >= threshold {
			out = append(out, a)
		}
	}
	return out
}

// IsTopRated сообщает, положен ли мастеру бейдж "Top Rated".
func IsTopRated(a models.Artisan) bool {
	return a.Rating >= models.TopRatedThreshold
}
