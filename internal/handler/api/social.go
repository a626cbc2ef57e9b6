package api

import (
	"CoinPulse/internal/domain/models"
	xhttp "CoinPulse/pkg/http"

	"github.com/labstack/echo/v4"
)

// SocialHandler serves fixed in-memory social feeds. No DB access.
type SocialHandler struct{}

func NewSocialHandler() *SocialHandler {
	return &SocialHandler{}
}

func (h *SocialHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/community", h.Community)
	g.GET("/influencer", h.Influencer)
	g.GET("/social-trends", h.SocialTrends)
}

func (h *SocialHandler) Community(c echo.Context) error {
	return xhttp.SuccessResponse(c, communityPosts)
}

func (h *SocialHandler) Influencer(c echo.Context) error {
	return xhttp.SuccessResponse(c, influencerAccounts)
}

func (h *SocialHandler) SocialTrends(c echo.Context) error {
	return xhttp.SuccessResponse(c, socialTrends)
}

var communityPosts = []models.CommunityPost{
	{ID: 1, Author: "hodler92", Title: "BTC breaking out?", Content: "Volume profile looks strong above 95k, thoughts?", Likes: 142, Comments: 38, PostedAt: "2025-08-28T14:20:00Z"},
	{ID: 2, Author: "eth_builder", Title: "Post-upgrade gas analysis", Content: "Average gas down 18% since the last upgrade, L2 migration is real.", Likes: 97, Comments: 21, PostedAt: "2025-08-28T11:05:00Z"},
	{ID: 3, Author: "macro_kim", Title: "Rate cut implications for crypto", Content: "If the cut lands in September, risk assets usually front-run by 3-4 weeks.", Likes: 210, Comments: 64, PostedAt: "2025-08-27T22:41:00Z"},
	{ID: 4, Author: "solana_dev", Title: "Validator economics update", Content: "New fee markets change staking yields more than people realize.", Likes: 55, Comments: 12, PostedAt: "2025-08-27T09:17:00Z"},
}

var influencerAccounts = []models.InfluencerAccount{
	{ID: 1, Handle: "@cryptowhale", Name: "Crypto Whale", Followers: 412000, Platform: "twitter", Verified: true},
	{ID: 2, Handle: "@defi_degen", Name: "DeFi Degen", Followers: 150000, Platform: "twitter", Verified: false},
	{ID: 3, Handle: "@onchain_oracle", Name: "Onchain Oracle", Followers: 287000, Platform: "twitter", Verified: true},
	{ID: 4, Handle: "@macro_kim", Name: "Macro Kim", Followers: 96000, Platform: "youtube", Verified: true},
}

var socialTrends = []models.SocialTrend{
	{ID: 1, Keyword: "bitcoin etf", Mentions: 18230, Change: 12.4, Symbol: "BTC"},
	{ID: 2, Keyword: "eth upgrade", Mentions: 9412, Change: 34.1, Symbol: "ETH"},
	{ID: 3, Keyword: "sol memecoins", Mentions: 7621, Change: -8.2, Symbol: "SOL"},
	{ID: 4, Keyword: "xrp ruling", Mentions: 5108, Change: 4.9, Symbol: "XRP"},
	{ID: 5, Keyword: "halving cycle", Mentions: 3987, Change: -2.3, Symbol: "BTC"},
}
