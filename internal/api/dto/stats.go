package dto

type ActivityBucket struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Active    int    `json:"active"`
	Completed int    `json:"completed"`
}

type ActivityResponse struct {
	Range   string           `json:"range"`
	Buckets []ActivityBucket `json:"buckets"`
}

type SummaryResponse struct {
	Total          int     `json:"total"`
	Pending        int     `json:"pending"`
	Active         int     `json:"active"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completionRate"`
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MeResponse struct {
	User User `json:"user"`
}
