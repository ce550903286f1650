// internal/workers/notifications/notify-user/models.go
package notifyuser

// Display defaults applied when the stored record leaves fields blank.
const (
	DefaultTitle = "Notification"
	DefaultBody  = ""
)

// Android/APNs rendering attributes for user-facing notifications. The
// client app registers the matching channel on install.
const (
	androidChannelID   = "high_importance_channel"
	androidIcon        = "@mipmap/ic_launcher"
	androidColor       = "#4CAF50"
	androidClickAction = "FLUTTER_NOTIFICATION_CLICK"
)
