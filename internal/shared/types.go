package shared

// Task types processed by cmd/worker
const (
	TypeSendEmail                 = "email:send"
	TypeCourseCreatedEmail        = "notification:course_created_email"
	TypeCleanupReadNotifications  = "notification:cleanup_read"
	TypeCoursePhotoThumbnail      = "course:photo_thumbnail"
	TypeDeleteCoursePhotoArtifact = "course:delete_photo"
)

// Queue names and their weights in the worker
const (
	QueueNotification = "notifications"
	QueueEmail        = "email"
	QueueMedia        = "media"
	QueueDefault      = "default"
)

// Queues maps each queue to its priority weight
var Queues = map[string]int{
	QueueNotification: 5,
	QueueEmail:        4,
	QueueMedia:        2,
	QueueDefault:      1,
}

// CourseCreatedEmailPayload is the payload of TypeCourseCreatedEmail.
// Price is preformatted so the worker does not need the decimal type.
type CourseCreatedEmailPayload struct {
	CourseID   int64  `json:"course_id"`
	CourseName string `json:"course_name"`
	Price      string `json:"price"`
}

// CoursePhotoPayload is the payload of the photo tasks
type CoursePhotoPayload struct {
	CourseID int64  `json:"course_id"`
	PhotoKey string `json:"photo_key"`
}

// CleanupReadNotificationsPayload is the payload of TypeCleanupReadNotifications
type CleanupReadNotificationsPayload struct {
	OlderThanDays int `json:"older_than_days"`
}
