package models

// Static social feed shapes. Served from fixed in-memory data, no DB access.

type CommunityPost struct {
	ID       int    `json:"id"`
	Author   string `json:"author"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
	PostedAt string `json:"posted_at"`
}

type InfluencerAccount struct {
	ID        int    `json:"id"`
	Handle    string `json:"handle"`
	Name      string `json:"name"`
	Followers int64  `json:"followers"`
	Platform  string `json:"platform"`
	Verified  bool   `json:"verified"`
}

type SocialTrend struct {
	ID       int     `json:"id"`
	Keyword  string  `json:"keyword"`
	Mentions int     `json:"mentions"`
	Change   float64 `json:"change"` // percent vs previous period
	Symbol   string  `json:"symbol"`
}
