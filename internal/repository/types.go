package repository

// PostListFilter 查询文章列表的过滤条件
type PostListFilter struct {
	Page       int
	PageSize   int
	Published  *bool
	CategoryID *uint
	TagID      *uint
	Search     string
	OrderBy    string
}

// CommentListFilter 查询评论列表的过滤条件
type CommentListFilter struct {
	Approved *bool
	PostID   *uint
}

// DashboardStats 后台概览统计
type DashboardStats struct {
	Posts           int64 `json:"posts"`
	PublishedPosts  int64 `json:"published_posts"`
	PendingComments int64 `json:"pending_comments"`
	NewsLinks       int64 `json:"news_links"`
	Subscribers     int64 `json:"subscribers"`
}
