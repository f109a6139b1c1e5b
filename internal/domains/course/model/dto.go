package model

import (
	"time"

	"github.com/shopspring/decimal"

	"academy-backend/internal/domains/category"
)

// CourseForm is the multipart body of POST /courses and PUT /courses/:id.
// Every field stays a string so the exact submitted input can be echoed back on 422.
type CourseForm struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
	Price       string `form:"price" json:"price"`
	Capacity    string `form:"capacity" json:"capacity"`
	StartDate   string `form:"start_date" json:"start_date"`
	EndDate     string `form:"end_date" json:"end_date"`
	CategoryID  string `form:"category_id" json:"category_id"`
}

// CourseInput is a validated CourseForm
type CourseInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Capacity    int
	StartDate   time.Time
	EndDate     time.Time
	CategoryID  *int64
}

// Apply copies the input onto a course, leaving identity and photo alone
func (in *CourseInput) Apply(c *Course) {
	c.Name = in.Name
	c.Description = in.Description
	c.Price = in.Price
	c.Capacity = in.Capacity
	c.StartDate = in.StartDate
	c.EndDate = in.EndDate
	c.CategoryID = in.CategoryID
}

// PhotoUpload is the raw photo part of a course form
type PhotoUpload struct {
	Filename string
	Data     []byte
}

// CourseResponse is the JSON shape of a course
type CourseResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Price        string    `json:"price"`
	PriceLabel   string    `json:"price_label"`
	Capacity     int       `json:"capacity"`
	LowCapacity  bool      `json:"low_capacity"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Photo        *string   `json:"photo"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	CategoryID   *int64    `json:"category_id"`
	CategoryName *string   `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToResponse renders a course. photoURL turns an object key into a public URL.
func ToResponse(c Course, photoURL func(string) string) CourseResponse {
	resp := CourseResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Price:        c.Price.StringFixed(2),
		PriceLabel:   FormatPrice(c.Price),
		Capacity:     c.Capacity,
		LowCapacity:  c.Capacity < LowCapacityThreshold,
		StartDate:    c.StartDate.Format(DateLayout),
		EndDate:      c.EndDate.Format(DateLayout),
		Photo:        c.Photo,
		CategoryID:   c.CategoryID,
		CategoryName: c.CategoryName,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.Photo != nil && photoURL != nil {
		resp.PhotoURL = photoURL(*c.Photo)
	}
	return resp
}

// ListCoursesResponse is the body of GET /courses
type ListCoursesResponse struct {
	Courses []CourseResponse `json:"courses"`
	Filters ListFilter       `json:"filters"`
}

// FormDataResponse backs GET /courses/create and GET /courses/:id/edit
type FormDataResponse struct {
	Course     *CourseResponse     `json:"course,omitempty"`
	Categories []category.Category `json:"categories"`
}
