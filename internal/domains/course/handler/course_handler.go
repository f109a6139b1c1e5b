package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"academy-backend/internal/domains/course/model"
	"academy-backend/internal/domains/course/service"
	"academy-backend/internal/infrastructure/storage"
	"academy-backend/internal/shared/authz"
	"academy-backend/internal/shared/middleware"
	"academy-backend/internal/shared/response"
)

// Handler serves the /courses routes
type Handler struct {
	service      service.ServiceInterface
	maxPhotoSize int64
}

func NewHandler(s service.ServiceInterface, maxPhotoSize int64) *Handler {
	if maxPhotoSize <= 0 {
		maxPhotoSize = storage.DefaultMaxPhotoSize
	}
	return &Handler{
		service:      s,
		maxPhotoSize: maxPhotoSize,
	}
}

// ========== LIST: GET /courses ==========
func (h *Handler) List(c *gin.Context) {
	filter := model.ParseListFilter(
		c.Query("page"),
		c.Query("busqueda"),
		c.Query("categoria_id"),
		c.Query("stock_bajo"),
	)

	page, err := h.service.List(c.Request.Context(), filter)
	if HandleError(c, err, nil) {
		return
	}

	courses := make([]model.CourseResponse, 0, len(page.Items))
	for _, item := range page.Items {
		courses = append(courses, model.ToResponse(item, h.service.PhotoURL))
	}

	response.SuccessWithMeta(c, http.StatusOK, "Get courses successfully",
		model.ListCoursesResponse{Courses: courses, Filters: filter},
		&response.Meta{
			Page:       page.Page,
			PerPage:    page.PerPage,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		})
}

// ========== SHOW: GET /courses/:id ==========
func (h *Handler) Show(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}

	course, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrCourseNotFound) {
			log.Warn().Int64("course_id", id).Msg("Course not found")
		}
		HandleError(c, err, nil)
		return
	}

	response.Success(c, http.StatusOK, "Get course successfully", model.ToResponse(*course, h.service.PhotoURL))
}

// ========== FORM DATA: GET /courses/create ==========
func (h *Handler) CreateForm(c *gin.Context) {
	categories, err := h.service.CreateForm(c.Request.Context(), middleware.ActorFrom(c))
	if HandleError(c, err, nil) {
		return
	}

	response.Success(c, http.StatusOK, "Get form data successfully", model.FormDataResponse{Categories: categories})
}

// ========== FORM DATA: GET /courses/:id/edit ==========
func (h *Handler) EditForm(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}

	course, categories, err := h.service.EditForm(c.Request.Context(), middleware.ActorFrom(c), id)
	if HandleError(c, err, nil) {
		return
	}

	resp := model.ToResponse(*course, h.service.PhotoURL)
	response.Success(c, http.StatusOK, "Get form data successfully", model.FormDataResponse{
		Course:     &resp,
		Categories: categories,
	})
}

// ========== CREATE: POST /courses ==========
func (h *Handler) Create(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	// STEP 1: GATE (before touching the body)
	if HandleError(c, authz.Authorize(actor, authz.ActionCreate), nil) {
		return
	}

	// STEP 2: PARSE MULTIPART FORM
	var form model.CourseForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "Invalid form data")
		return
	}

	photo, err := h.readPhoto(c)
	if HandleError(c, err, form) {
		return
	}

	// STEP 3: CREATE (validation and storage happen in the service)
	course, err := h.service.Create(c.Request.Context(), actor, form, photo)
	if HandleError(c, err, form) {
		return
	}

	// STEP 4: SUCCESS
	c.Header("Location", fmt.Sprintf("/courses/%d", course.ID))
	response.Success(c, http.StatusCreated, "Course created: "+course.Name, model.ToResponse(*course, h.service.PhotoURL))
}

// ========== UPDATE: PUT /courses/:id ==========
func (h *Handler) Update(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if HandleError(c, authz.Authorize(actor, authz.ActionUpdate), nil) {
		return
	}

	id, ok := courseID(c)
	if !ok {
		return
	}

	var form model.CourseForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "Invalid form data")
		return
	}

	photo, err := h.readPhoto(c)
	if HandleError(c, err, form) {
		return
	}

	course, err := h.service.Update(c.Request.Context(), actor, id, form, photo)
	if HandleError(c, err, form) {
		return
	}

	c.Header("Location", fmt.Sprintf("/courses/%d", course.ID))
	response.Success(c, http.StatusOK, "Course updated: "+course.Name, model.ToResponse(*course, h.service.PhotoURL))
}

// ========== DELETE: DELETE /courses/:id ==========
func (h *Handler) Delete(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if HandleError(c, authz.Authorize(actor, authz.ActionDelete), nil) {
		return
	}

	id, ok := courseID(c)
	if !ok {
		return
	}

	course, err := h.service.Delete(c.Request.Context(), actor, id)
	if HandleError(c, err, nil) {
		return
	}

	c.Header("Location", "/courses")
	response.Success(c, http.StatusOK, "Course deleted: "+course.Name, model.ToResponse(*course, h.service.PhotoURL))
}

// ========== EXPORTS ==========
func (h *Handler) ExportExcel(c *gin.Context) {
	file, err := h.service.ExportExcel(c.Request.Context(), middleware.ActorFrom(c))
	if HandleError(c, err, nil) {
		return
	}
	sendFile(c, file)
}

func (h *Handler) ExportPDF(c *gin.Context) {
	file, err := h.service.ExportPDF(c.Request.Context(), middleware.ActorFrom(c))
	if HandleError(c, err, nil) {
		return
	}
	sendFile(c, file)
}

// HandleError writes the response for err and reports whether it did
func HandleError(c *gin.Context, err error, input interface{}) bool {
	return model.HandleCourseError(c, err, input)
}

func sendFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// courseID parses :id. Anything but a positive integer is a 404.
func courseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		log.Warn().Str("course_id", c.Param("id")).Msg("Course not found")
		HandleError(c, model.ErrInvalidCourse, nil)
		return 0, false
	}
	return id, true
}

// readPhoto returns the optional photo part. At most maxPhotoSize+1 bytes are
// read so an oversized upload is reported without buffering all of it.
func (h *Handler) readPhoto(c *gin.Context) (*model.PhotoUpload, error) {
	header, err := c.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, &model.PhotoUploadError{Reason: "the photo could not be read", Err: err}
	}

	f, err := header.Open()
	if err != nil {
		return nil, &model.PhotoUploadError{Reason: "the photo could not be read", Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxPhotoSize+1))
	if err != nil {
		return nil, &model.PhotoUploadError{Reason: "the photo could not be read", Err: err}
	}
	if int64(len(data)) > h.maxPhotoSize {
		return nil, &model.PhotoUploadError{Reason: storage.ErrPhotoTooLarge.Error(), Err: storage.ErrPhotoTooLarge}
	}

	return &model.PhotoUpload{Filename: header.Filename, Data: data}, nil
}
