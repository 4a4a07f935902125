package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionKind определяет тип заявки, отправленной с формы.
type SubmissionKind string

const (
	SubmissionHireRequest    SubmissionKind = "hire_request"
	SubmissionApplication    SubmissionKind = "application"
	SubmissionPurchase       SubmissionKind = "purchase"
	SubmissionJobPosting     SubmissionKind = "job_posting"
	SubmissionProductPosting SubmissionKind = "product_posting"
	SubmissionWaitlist       SubmissionKind = "waitlist_signup"
)

// SubmissionStatus константы статусов доставки заявки
const (
	SubmissionStatusDelivered = "delivered"
	SubmissionStatusFailed    = "failed"
)

// ContactInfo описывает контактные данные из формы.
type ContactInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// HireRequest описывает запрос на найм мастера.
type HireRequest struct {
	ArtisanID      uuid.UUID   `json:"artisan_id"`
	Contact        ContactInfo `json:"contact"`
	ProjectDetails string      `json:"project_details"`
}

// Application описывает отклик на вакансию.
type Application struct {
	JobID   uuid.UUID     `json:"job_id"`
	Contact ContactInfo   `json:"contact"`
	Resume  *UploadedFile `json:"resume,omitempty"`
}

// Purchase описывает покупку товара.
type Purchase struct {
	ProductID       uuid.UUID   `json:"product_id"`
	Buyer           ContactInfo `json:"buyer"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
}

// JobPosting описывает новую вакансию от работодателя.
type JobPosting struct {
	Poster ContactInfo   `json:"poster"`
	Job    Job           `json:"job"`
	Image  *UploadedFile `json:"image,omitempty"`
}

// ProductPosting описывает новый товар от продавца.
type ProductPosting struct {
	Poster  ContactInfo   `json:"poster"`
	Product Product       `json:"product"`
	Image   *UploadedFile `json:"image,omitempty"`
}

// WaitlistSignup описывает запись в лист ожидания.
type WaitlistSignup struct {
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

// Submission - конверт, в котором заявка уходит получателю.
type Submission struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	Kind      SubmissionKind `db:"kind" json:"kind"`
	TargetID  *uuid.UUID     `db:"target_id" json:"target_id,omitempty"`
	Payload   any            `db:"-" json:"payload"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// SubmissionResult возвращается клиенту после обработки заявки.
type SubmissionResult struct {
	ID      uuid.UUID      `json:"id"`
	Kind    SubmissionKind `json:"kind"`
	Status  string         `json:"status"`
	Message string         `json:"message"`
}
