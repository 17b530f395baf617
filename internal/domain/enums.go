package domain

// ChatStatus is the lifecycle status of a chat row.
type ChatStatus string

const (
	ChatStatusActive   ChatStatus = "active"
	ChatStatusArchived ChatStatus = "archived"
)

func (s ChatStatus) String() string { return string(s) }

func (s ChatStatus) IsValid() bool {
	switch s {
	case ChatStatusActive, ChatStatusArchived:
		return true
	}
	return false
}

// MessageRole identifies the author of a message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

func (r MessageRole) String() string { return string(r) }

func (r MessageRole) IsValid() bool {
	switch r {
	case MessageRoleUser, MessageRoleAssistant, MessageRoleSystem:
		return true
	}
	return false
}

// BatchOperation is a mutation applied to a set of chats at once.
type BatchOperation string

const (
	BatchOperationDelete   BatchOperation = "delete"
	BatchOperationFavorite BatchOperation = "favorite"
	BatchOperationProtect  BatchOperation = "protect"
)

func (o BatchOperation) String() string { return string(o) }

func (o BatchOperation) IsValid() bool {
	switch o {
	case BatchOperationDelete, BatchOperationFavorite, BatchOperationProtect:
		return true
	}
	return false
}

// AuditAction is the action column of a system log row.
type AuditAction string

const (
	AuditActionSettingsUpdate AuditAction = "settings_update"
	AuditActionCleanup        AuditAction = "data_cleanup"
	AuditActionScheduled      AuditAction = "scheduled_cleanup"
	AuditActionBatch          AuditAction = "batch_operation"
	AuditActionDeleteAll      AuditAction = "delete_all_data"
	AuditActionChatDelete     AuditAction = "chat_delete"
	AuditActionExport         AuditAction = "data_export"
)

func (a AuditAction) String() string { return string(a) }
