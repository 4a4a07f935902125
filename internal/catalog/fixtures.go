package catalog

import (
	"time"

	"github.com/ignatzorin/localhire/internal/models"
)

// NewDefaultStore собирает каталог из встроенного набора записей.
func NewDefaultStore() (*Store, error) {
	return NewStore(DefaultJobs(), DefaultArtisans(), DefaultProducts(), DefaultOptions())
}

// DefaultJobs возвращает вакансии витрины.
func DefaultJobs() []models.Job {
	return []models.Job{
		newJob("Fashion Designer", "Fashion", "Lagos", "₦200,000/month",
			"Design and create fashionable clothing for a leading brand.", "/img-1.jpg"),
		newJob("Hospitality Manager", "Hospitality", "Port Harcourt", "₦300,000/month",
			"Manage operations for a luxury hotel.", "/img-2.jpg"),
		newJob("Sales Associate", "Sales and Marketing", "Agege", "₦150,000/month",
			"Drive sales for a retail company.", "/img-3.jpg"),
		newJob("Fashion Stylist", "Fashion", "Ikotun", "₦180,000/month",
			"Style clients for events and photoshoots.", "/img-4.jpg"),
		newJob("Marketing Specialist", "Sales and Marketing", "Lagos", "₦250,000/month",
			"Develop marketing campaigns for a tech startup.", "/img-5.jpg"),
	}
}

// DefaultArtisans возвращает мастеров витрины.
func DefaultArtisans() []models.Artisan {
	return []models.Artisan{
		newArtisan("Ikenna Kenneth", "Fashion Designer", "Agege", 4.8, "/img-1.jpg",
			"Sewing", "Pattern Making", "Fashion Illustration"),
		newArtisan("Susana Elijah Archibong", "Hospitality Expert", "Lagos", 4.5, "/img-2.jpg",
			"Event Planning", "Catering", "Customer Service"),
		newArtisan("Josephine Grace Owuama", "Fashion Stylist", "Ikotun", 4.2, "/img-3.jpg",
			"Wardrobe Styling", "Personal Shopping", "Image Consulting"),
		newArtisan("Samuel Udoakah", "Sales and Marketing Expert", "Port Harcourt", 4.7, "/img-4.jpg",
			"Digital Marketing", "Sales Strategy", "Branding"),
		newArtisan("Amaka Nwosu", "Fashion Designer", "Lagos", 4.9, "/img-5.jpg",
			"Textile Design", "Tailoring", "Couture"),
	}
}

// DefaultProducts возвращает товары маркетплейса.
func DefaultProducts() []models.Product {
	return []models.Product{
		newProduct("Handmade Dress", "Fashion", "Lagos", "₦50,000",
			"A beautifully crafted handmade dress with intricate patterns.", "/img-1.jpg", "2025-05-30"),
		newProduct("Luxury Dinner Set", "Hospitality", "Port Harcourt", "₦80,000",
			"A premium dinner set for luxury dining experiences.", "/img-2.jpg", "2025-05-28"),
		newProduct("Marketing Guide Book", "Sales and Marketing", "Agege", "₦20,000",
			"A comprehensive guide to modern marketing strategies.", "/img-3.jpg", "2025-05-25"),
		newProduct("Custom Necklace", "Fashion", "Ikotun", "₦30,000",
			"A custom-made necklace with personalized design.", "/img-4.jpg", "2025-05-29"),
		newProduct("Sales Training Kit", "Sales and Marketing", "Lagos", "₦45,000",
			"A training kit for sales professionals to boost performance.", "/img-5.jpg", "2025-05-27"),
	}
}

// DefaultOptions возвращает значения фильтров, которые показывает фронтенд.
func DefaultOptions() Options {
	return Options{
		Categories: []models.Option{
			{Value: "fashion", Label: "Fashion"},
			{Value: "hospitality", Label: "Hospitality"},
			{Value: "sales", Label: "Sales and Marketing"},
		},
		Locations: []models.Option{
			{Value: "Agege", Label: "Agege"},
			{Value: "Lagos", Label: "Lagos"},
			{Value: "Ikotun", Label: "Ikotun"},
			{Value: "Port Harcourt", Label: "Port Harcourt"},
		},
	}
}

func newJob(title, category, location, salary, description, image string) models.Job {
	return models.Job{
		ID:          RecordID(models.KindJob, title),
		Title:       title,
		Category:    category,
		Location:    location,
		Salary:      salary,
		Description: description,
		Image:       &image,
	}
}

func newArtisan(name, title, location string, rating float64, image string, skills ...string) models.Artisan {
	return models.Artisan{
		ID:       RecordID(models.KindArtisan, name),
		Name:     name,
		Title:    title,
		Location: location,
		Skills:   skills,
		Rating:   rating,
		Image:    &image,
	}
}

func newProduct(title, category, location, price, description, image, created string) models.Product {
	createdAt, err := time.Parse(time.DateOnly, created)
	if err != nil {
		panic("catalog: некорректная дата в фикстуре: " + created)
	}
	return models.Product{
		ID:          RecordID(models.KindProduct, title),
		Title:       title,
		Category:    category,
		Location:    location,
		Price:       price,
		Description: description,
		CreatedAt:   createdAt,
		Image:       &image,
	}
}
