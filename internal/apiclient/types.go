package apiclient

import "time"

// Token is the credential returned by POST /auth/login.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Expiry      time.Time `json:"expiry,omitempty"`
}

// Timestamps are kept as strings: the backend emits naive ISO-8601 values
// without a zone, which time.Time refuses to decode.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Website   string `json:"website,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	IsActive  bool   `json:"is_active"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at,omitempty"`
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	FullName        string `json:"full_name,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// ProfileUpdate is a partial update; nil fields are left unchanged.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Website  *string `json:"website,omitempty"`
	Twitter  *string `json:"twitter,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
}

type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"-"`
}

type UserSettings struct {
	EmailNotifications     bool   `json:"email_notifications"`
	PushNotifications      bool   `json:"push_notifications"`
	NewsletterSubscription bool   `json:"newsletter_subscription"`
	CommentNotifications   bool   `json:"comment_notifications"`
	LikeNotifications      bool   `json:"like_notifications"`
	PublicProfile          bool   `json:"public_profile"`
	ShowEmail              bool   `json:"show_email"`
	BlogTitle              string `json:"blog_title,omitempty"`
	BlogDescription        string `json:"blog_description,omitempty"`
	AllowComments          bool   `json:"allow_comments"`
	ModerateComments       bool   `json:"moderate_comments"`
}

type Post struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Summary     string `json:"summary,omitempty"`
	Slug        string `json:"slug"`
	IsPublished bool   `json:"is_published"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
	AuthorID    int64  `json:"author_id"`
	Author      *User  `json:"author,omitempty"`
}

type PostInput struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Summary     string `json:"summary,omitempty"`
	IsPublished bool   `json:"is_published"`
}

type Comment struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	PostID    int64  `json:"post_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	Author    *User  `json:"author,omitempty"`
}

type CommentInput struct {
	Content string `json:"content"`
	PostID  int64  `json:"post_id,omitempty"`
}

type Subscriber struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name,omitempty"`
	IsActive     bool   `json:"is_active"`
	SubscribedAt string `json:"subscribed_at,omitempty"`
}

type SubscriberStats struct {
	TotalActive       int `json:"total_active"`
	TotalUnsubscribed int `json:"total_unsubscribed"`
	TotalAllTime      int `json:"total_all_time"`
}

type DashboardStats struct {
	TotalPosts       int `json:"totalPosts"`
	PublishedPosts   int `json:"publishedPosts"`
	DraftPosts       int `json:"draftPosts"`
	TotalViews       int `json:"totalViews"`
	TotalLikes       int `json:"totalLikes"`
	TotalComments    int `json:"totalComments"`
	TotalSubscribers int `json:"totalSubscribers"`
}

type AnalyticsOverview struct {
	Overview struct {
		DashboardStats
		TotalShares    int     `json:"totalShares"`
		ViewsChange    float64 `json:"viewsChange"`
		LikesChange    float64 `json:"likesChange"`
		CommentsChange float64 `json:"commentsChange"`
		SharesChange   float64 `json:"sharesChange"`
	} `json:"overview"`
	TimeRange string `json:"timeRange"`
}

type PostStats struct {
	PostID   int64 `json:"post_id"`
	Views    int   `json:"views"`
	Likes    int   `json:"likes"`
	Comments int   `json:"comments"`
	Shares   int   `json:"shares"`
}

type UserPostInteractions struct {
	PostID    int64 `json:"post_id"`
	HasLiked  bool  `json:"has_liked"`
	HasViewed bool  `json:"has_viewed"`
}

// Message is the {"message": ...} acknowledgement most mutations return.
type Message map[string]any

// Series is a chart or feed payload whose item shape is owned by the backend.
type Series []map[string]any
