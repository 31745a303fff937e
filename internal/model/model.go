package model

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type HistoryItem struct {
	ID        int    `json:"id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

type UploadedFile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type DeleteFileResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateReminderRequest is the body of POST /api/reminders/.
type CreateReminderRequest struct {
	Task string  `json:"task"`
	Date *string `json:"date"`
}

// UpdateReminderRequest is the body of PUT /api/reminders/. Nil fields
// are left unchanged; an empty Date clears the stored date.
type UpdateReminderRequest struct {
	ID   *uint   `json:"id"`
	Task *string `json:"task"`
	Date *string `json:"date"`
}

type DeleteReminderRequest struct {
	ID *uint `json:"id"`
}

type ReminderResponse struct {
	ID        uint   `json:"id"`
	Task      string `json:"task"`
	Date      string `json:"date"`
	CreatedAt string `json:"created_at"`
}

type DeleteReminderResponse struct {
	Message string `json:"message"`
}
