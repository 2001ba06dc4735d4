package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	Email        string    `gorm:"size:190;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Avatar       string    `gorm:"size:255" json:"avatar,omitempty"`
	Lat          float64   `gorm:"index:idx_users_location" json:"lat"`
	Lng          float64   `gorm:"index:idx_users_location" json:"lng"`
	Contact      string    `gorm:"size:40" json:"contact"`
	Bio          string    `gorm:"type:text" json:"bio,omitempty"`
	TrustScore   int       `gorm:"default:0" json:"trust_score"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Help request categories, statuses and priorities.
const (
	CategoryMedical   = "Medical"
	CategoryMedicines = "Medicines"
	CategoryGroceries = "Groceries"
	CategoryFood      = "Food"
	CategoryTransport = "Transport"
	CategoryOther     = "other"

	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusFulfilled  = "fulfilled"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type HelpRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:30" json:"category"`
	Status      string    `gorm:"size:20;default:open" json:"status"`
	Priority    string    `gorm:"size:10;default:medium" json:"priority"`
	Lat         float64   `gorm:"index:idx_help_requests_location" json:"lat"`
	Lng         float64   `gorm:"index:idx_help_requests_location" json:"lng"`
	Tags        string    `gorm:"size:500" json:"tags"` // comma separated
	RequesterID uint      `gorm:"index;not null" json:"requester_id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
}

// Response statuses.
const (
	ResponsePending  = "Pending"
	ResponseAccepted = "Accepted"
	ResponseDeclined = "Declined"
)

type Response struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	HelpRequestID uint      `gorm:"index:idx_responses_request_helper,unique;not null" json:"help_request_id"`
	HelperID      uint      `gorm:"index:idx_responses_request_helper,unique;not null" json:"helper_id"`
	Message       string    `gorm:"type:text" json:"message"`
	Status        string    `gorm:"size:10;default:Pending" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	HelpRequest HelpRequest `gorm:"foreignKey:HelpRequestID" json:"help_request,omitempty"`
	Helper      User        `gorm:"foreignKey:HelperID" json:"helper,omitempty"`
}

// File type tags carried by chat attachments.
const (
	FileTypeImage = "image"
	FileTypePDF   = "pdf"
	FileTypeDoc   = "doc"
	FileTypeOther = "other"
)

// NormalizeFileType coerces an attachment tag onto the known set. Anything
// a client declares outside it is stored as FileTypeOther.
func NormalizeFileType(t string) string {
	switch t {
	case FileTypeImage, FileTypePDF, FileTypeDoc, FileTypeOther:
		return t
	default:
		return FileTypeOther
	}
}

type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"index;not null" json:"sender_id"`
	ReceiverID uint      `gorm:"index;not null" json:"receiver_id"`
	RequestID  uint      `gorm:"index;not null" json:"request_id"`
	Text       string    `gorm:"type:text" json:"text"`
	FileURL    string    `gorm:"size:255" json:"file_url,omitempty"`
	FileType   string    `gorm:"size:10" json:"file_type,omitempty"`
	Delivered  bool      `gorm:"not null" json:"delivered"`
	Seen       bool      `gorm:"not null;index" json:"seen"`
	Deleted    bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}
