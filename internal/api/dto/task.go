package dto

type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TaskItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Deadline    *string `json:"deadline"`
	UserID      string  `json:"userId"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	Tags        []Tag   `json:"tags"`
}

type TaskResponse struct {
	Task TaskItem `json:"task"`
}

type TaskListResponse struct {
	Tasks []TaskItem `json:"tasks"`
}

type TagListResponse struct {
	Tags []Tag `json:"tags"`
}

type MoveTaskResponse struct {
	Task  TaskItem `json:"task"`
	Moved bool     `json:"moved"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=65535"`
	Status      *string  `json:"status" binding:"omitempty,oneof=todo in_progress completed"`
	Priority    *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	Deadline    *string  `json:"deadline"`
	Tags        []string `json:"tags" binding:"omitempty,dive,max=64"`
}

type UpdateTaskRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=65535"`
	Status      *string  `json:"status" binding:"omitempty,oneof=todo in_progress completed"`
	Priority    *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	Deadline    *string  `json:"deadline"`
	Tags        []string `json:"tags" binding:"omitempty,dive,max=64"`
}

type MoveTaskRequest struct {
	OverID string `json:"over_id" binding:"required"`
}
