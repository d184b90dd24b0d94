package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type Account struct {
	ID             int64     `json:"id"`
	Role           Role      `json:"role"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	PasswordHash   string    `json:"-"`
	AdminCode      string    `json:"adminCode,omitempty"`
	GraduationYear int       `json:"graduationYear,omitempty"`
	Course         string    `json:"course,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (a Account) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// ProfileUpdate carries the editable profile fields. Nil leaves a field unchanged.
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	GraduationYear *int
	Course         *string
	Bio            *string
}

// ResetMarker is the persisted half of a password reset token.
type ResetMarker struct {
	NonceHash string
	ExpiresAt time.Time
}

type PostType string

const (
	PostRegular  PostType = "regular"
	PostJob      PostType = "job"
	PostEvent    PostType = "event"
	PostMedia    PostType = "media"
	PostDonation PostType = "donation"
)

func (t PostType) Valid() bool {
	switch t {
	case PostRegular, PostJob, PostEvent, PostMedia, PostDonation:
		return true
	}
	return false
}

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

type Media struct {
	URL  string    `json:"url"`
	Kind MediaKind `json:"type"`
	Key  string    `json:"-"`
}

type JobDetails struct {
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location,omitempty"`
	Type         string     `json:"type,omitempty"`
	Salary       string     `json:"salary,omitempty"`
	Requirements string     `json:"requirements,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}

type EventDetails struct {
	Name     string     `json:"name"`
	Date     *time.Time `json:"date,omitempty"`
	Location string     `json:"location,omitempty"`
	Summary  string     `json:"summary,omitempty"`
}

type DonationDetails struct {
	Title   string  `json:"title"`
	Goal    float64 `json:"goal,omitempty"`
	Purpose string  `json:"purpose,omitempty"`
}

type Post struct {
	ID              int64            `json:"id"`
	OwnerID         int64            `json:"ownerId"`
	OwnerName       string           `json:"ownerName"`
	Content         string           `json:"content"`
	Type            PostType         `json:"postType"`
	Media           *Media           `json:"media,omitempty"`
	JobDetails      *JobDetails      `json:"jobDetails,omitempty"`
	EventDetails    *EventDetails    `json:"eventDetails,omitempty"`
	DonationDetails *DonationDetails `json:"donationDetails,omitempty"`
	LikeCount       int              `json:"likeCount"`
	CommentCount    int              `json:"commentCount"`
	IsLiked         bool             `json:"isLiked"`
	IsSaved         bool             `json:"isSaved"`
	Comments        []Comment        `json:"comments"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// KeepMatchingDetails drops every typed sub-document that does not belong to
// the post's type.
func (p *Post) KeepMatchingDetails() {
	if p.Type != PostJob {
		p.JobDetails = nil
	}
	if p.Type != PostEvent {
		p.EventDetails = nil
	}
	if p.Type != PostDonation {
		p.DonationDetails = nil
	}
}

type Comment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"postId"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

type NotificationKind string

const (
	NotifyLike    NotificationKind = "like"
	NotifyComment NotificationKind = "comment"
)

type Notification struct {
	ID          int64            `json:"id"`
	RecipientID int64            `json:"recipientId"`
	SenderID    int64            `json:"senderId"`
	SenderName  string           `json:"senderName"`
	Kind        NotificationKind `json:"type"`
	PostID      int64            `json:"postId"`
	Message     string           `json:"message"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type Announcement struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"authorId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type Event struct {
	ID        int64      `json:"id"`
	AuthorID  int64      `json:"authorId"`
	Name      string     `json:"name"`
	Date      *time.Time `json:"date,omitempty"`
	Location  string     `json:"location,omitempty"`
	Summary   string     `json:"summary,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type Job struct {
	ID           int64      `json:"id"`
	AuthorID     int64      `json:"authorId"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location,omitempty"`
	Type         string     `json:"type,omitempty"`
	Salary       string     `json:"salary,omitempty"`
	Requirements string     `json:"requirements,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	ApplyURL     string     `json:"applyUrl,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type Story struct {
	ID         int64     `json:"id"`
	AuthorID   int64     `json:"authorId"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	AlumniName string    `json:"alumniName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type SiteStats struct {
	Users         int64 `json:"users"`
	Admins        int64 `json:"admins"`
	Posts         int64 `json:"posts"`
	Comments      int64 `json:"comments"`
	Likes         int64 `json:"likes"`
	Announcements int64 `json:"announcements"`
	Events        int64 `json:"events"`
	Jobs          int64 `json:"jobs"`
	Stories       int64 `json:"stories"`
}
