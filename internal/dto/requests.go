package dto

import (
	"strings"

	"github.com/ignatzorin/localhire/internal/models"
	"github.com/ignatzorin/localhire/internal/query"
	"github.com/ignatzorin/localhire/internal/validation"
)

// ListQuery represents list query parameters
type ListQuery struct {
	Search   string `form:"q"`
	Category string `form:"category"`
	Location string `form:"location"`
	Skill    string `form:"skill"`
	Sort     string `form:"sort"`
	Page     int    `form:"page"`
}

// ToState converts query parameters to a list state
func (q ListQuery) ToState() query.State {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return query.State{
		Filter: query.Filter{
			Search:   q.Search,
			Category: q.Category,
			Location: q.Location,
			Skill:    q.Skill,
		},
		Sort: query.SortKey(strings.ToLower(strings.TrimSpace(q.Sort))),
		Page: page,
	}
}

// HireRequestBody represents the hire form
type HireRequestBody struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ProjectDetails string `json:"project_details"`
}

func (r HireRequestBody) Contact() models.ContactInfo {
	return models.ContactInfo{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// PurchaseRequestBody represents the checkout form
type PurchaseRequestBody struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
}

func (r PurchaseRequestBody) Buyer() models.ContactInfo {
	return models.ContactInfo{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// WaitlistRequestBody represents the waitlist form
type WaitlistRequestBody struct {
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

// ApplicationForm represents the multipart job application form.
// Resume file is sent in the "resume" field.
type ApplicationForm struct {
	Name  string `form:"name"`
	Email string `form:"email"`
	Phone string `form:"phone"`
}

func (f ApplicationForm) Contact() models.ContactInfo {
	return models.ContactInfo{Name: f.Name, Email: f.Email, Phone: f.Phone}
}

// JobPostingForm represents the multipart job posting form.
// Optional image is sent in the "image" field.
type JobPostingForm struct {
	CompanyName string `form:"company_name"`
	ContactName string `form:"contact_name"`
	Email       string `form:"email"`
	Phone       string `form:"phone"`
	Title       string `form:"title"`
	Category    string `form:"category"`
	Location    string `form:"location"`
	Salary      string `form:"salary"`
	Description string `form:"description"`
	Skills      string `form:"skills"`
}

func (f JobPostingForm) ToPosting() models.JobPosting {
	return models.JobPosting{
		Poster: models.ContactInfo{
			Name:    f.ContactName,
			Email:   f.Email,
			Phone:   f.Phone,
			Company: f.CompanyName,
		},
		Job: models.Job{
			Title:       strings.TrimSpace(f.Title),
			Category:    strings.TrimSpace(f.Category),
			Location:    strings.TrimSpace(f.Location),
			Salary:      strings.TrimSpace(f.Salary),
			Description: strings.TrimSpace(f.Description),
			Skills:      validation.SplitSkills(f.Skills),
		},
	}
}

// ProductPostingForm represents the multipart product posting form.
// Optional image is sent in the "image" field.
type ProductPostingForm struct {
	SellerName  string `form:"seller_name"`
	Email       string `form:"email"`
	Phone       string `form:"phone"`
	Title       string `form:"title"`
	Category    string `form:"category"`
	Location    string `form:"location"`
	Price       string `form:"price"`
	Description string `form:"description"`
}

func (f ProductPostingForm) ToPosting() models.ProductPosting {
	return models.ProductPosting{
		Poster: models.ContactInfo{
			Name:  f.SellerName,
			Email: f.Email,
			Phone: f.Phone,
		},
		Product: models.Product{
			Title:       strings.TrimSpace(f.Title),
			Category:    strings.TrimSpace(f.Category),
			Location:    strings.TrimSpace(f.Location),
			Price:       strings.TrimSpace(f.Price),
			Description: strings.TrimSpace(f.Description),
		},
	}
}
