package models

// MaintenanceReport is the summary the backend returns from its
// parameterless maintenance-job trigger.
type MaintenanceReport struct {
	Timestamp string           `json:"timestamp"`
	Tasks     MaintenanceTasks `json:"tasks"`
}

type MaintenanceTasks struct {
	ChatMessagesDeleted  DeletedCount   `json:"chat_messages_deleted"`
	StaleRequestsDeleted DeletedCount   `json:"pending_match_requests_deleted"`
	UsersActivated       UpdatedCount   `json:"users_activated"`
	UsersMarkedDeleted   PermanentSweep `json:"users_marked_for_permanent_deletion"`
}

type DeletedCount struct {
	DeletedCount int `json:"deleted_count"`
}

type UpdatedCount struct {
	UpdatedCount int `json:"updated_count"`
}

type PermanentSweep struct {
	MatchedCount       int `json:"matched_count"`
	PermanentlyDeleted int `json:"permanently_deleted"`
}
