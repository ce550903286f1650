// internal/workers/admin/purge-notifications/models.go
package purgenotifications

// PurgeResult reports how many notification records were removed.
type PurgeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int64  `json:"count"`
}
