package query

// Размеры страниц по умолчанию.
const (
	DefaultJobsPageSize     = 3
	DefaultArtisansPageSize = 6
	DefaultProductsPageSize = 6
)

// TotalPages возвращает количество страниц. Даже пустая выдача
// занимает одну страницу, на которой показывается сообщение об отсутствии результатов.
func TotalPages(count, size int) int {
	if size <= 0 || count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// Paginate возвращает срез [(page-1)*size, page*size) с учётом границ.
// Страница вне диапазона даёт пустой срез; запрет перехода за границы
// остаётся на вызывающей стороне.
func Paginate[T any](items []T, size, page int) []T {
	if size <= 0 || page < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	return items[start:end:end]
}
