package apierrors

const (
	MsgUnauthorized       = "unauthorized"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgInvalidRange       = "invalidRange"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailListTask       = "failListTask"
	MsgFailGetTask        = "failGetTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailMoveTask       = "failMoveTask"
	MsgFailListTags       = "failListTags"
	MsgFailStats          = "failStats"
	MsgTaskDeleted        = "taskDeleted"
	MsgInternalError      = "internalError"
)
