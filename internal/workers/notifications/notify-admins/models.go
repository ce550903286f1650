// internal/workers/notifications/notify-admins/models.go
package notifyadmins

const (
	// AdminTitle is carried in the data payload; the app renders it.
	AdminTitle = "New Order Received"

	// DefaultOrderStatus is reported when the order has no payment status yet.
	DefaultOrderStatus = "pending"

	// Sound is handled in the app for the admin channel.
	androidChannelID = "admin_high_importance_channel"
)

// orderSnapshot is the re-read state of an order after the settle delay.
// Absent fields come back as empty strings.
type orderSnapshot struct {
	Name          string
	FlatNo        string
	BuildingName  string
	PaymentStatus string
}
