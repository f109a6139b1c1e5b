package main

import (
	"github.com/hibiken/asynq"

	courseJob "academy-backend/internal/domains/course/job"
	notificationJob "academy-backend/internal/domains/notification/job"
	"academy-backend/internal/infrastructure/email"
	emailjob "academy-backend/internal/infrastructure/email/job"
	"academy-backend/internal/shared"
	"academy-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Email
	sendEmail *emailjob.SendEmailHandler

	// Notifications
	courseCreatedEmail *notificationJob.CourseCreatedEmailHandler
	cleanupRead        *notificationJob.CleanupReadHandler

	// Media
	photoThumbnail *courseJob.PhotoThumbnailHandler
	deletePhoto    *courseJob.DeletePhotoHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	emailSvc := email.NewEmailService(c.Config.Email)

	return &HandlerRegistry{
		sendEmail: emailjob.NewSendEmailHandler(emailSvc),

		courseCreatedEmail: notificationJob.NewCourseCreatedEmailHandler(c.UserService, c.AsynqClient),
		cleanupRead:        notificationJob.NewCleanupReadHandler(c.NotificationService),

		photoThumbnail: courseJob.NewPhotoThumbnailHandler(c.Storage, c.Images),
		deletePhoto:    courseJob.NewDeletePhotoHandler(c.Storage),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendEmail, h.sendEmail.ProcessTask)

	mux.HandleFunc(shared.TypeCourseCreatedEmail, h.courseCreatedEmail.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupReadNotifications, h.cleanupRead.ProcessTask)

	mux.HandleFunc(shared.TypeCoursePhotoThumbnail, h.photoThumbnail.ProcessTask)
	mux.HandleFunc(shared.TypeDeleteCoursePhotoArtifact, h.deletePhoto.ProcessTask)
}
