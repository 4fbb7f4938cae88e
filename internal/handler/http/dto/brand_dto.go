package dto

import (
	"time"

	"github.com/classbrand/brandnet/internal/domain/entity"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
)

// BrandRequest is the create and update payload of a brand profile.
type BrandRequest struct {
	BrandName    string `json:"brand_name" binding:"required,max=120"`
	Description  string `json:"description" binding:"max=2000"`
	Category     string `json:"category" binding:"max=60"`
	InstagramURL string `json:"instagram_url" binding:"required,httpsurl"`
	FacebookURL  string `json:"facebook_url" binding:"required,httpsurl"`
}

func (r BrandRequest) ToInput() usecasecontract.BrandInput {
	return usecasecontract.BrandInput{
		Name:         r.BrandName,
		Description:  r.Description,
		Category:     r.Category,
		InstagramURL: r.InstagramURL,
		FacebookURL:  r.FacebookURL,
	}
}

// BrandResponse is a brand as seen by one viewer.
type BrandResponse struct {
	ID            string `json:"id"`
	OwnerID       string `json:"owner_id"`
	BrandName     string `json:"brand_name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	InstagramURL  string `json:"instagram_url"`
	FacebookURL   string `json:"facebook_url"`
	FollowerCount int    `json:"follower_count"`
	LikeCount     int    `json:"like_count"`
	IsFollowing   bool   `json:"is_following"`
	IsLiked       bool   `json:"is_liked"`
	IsOwner       bool   `json:"is_owner"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// ToBrandResponse converts a brand, computing the view flags for viewerID.
// An empty viewerID yields all flags false.
func ToBrandResponse(b entity.Brand, viewerID string) BrandResponse {
	resp := BrandResponse{
		ID:            b.ID,
		OwnerID:       b.OwnerID,
		BrandName:     b.Name,
		Description:   b.Description,
		Category:      b.Category,
		InstagramURL:  b.InstagramURL,
		FacebookURL:   b.FacebookURL,
		FollowerCount: b.FollowerCount,
		LikeCount:     b.LikeCount,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
	if viewerID != "" {
		resp.IsFollowing = b.HasMember(entity.RelationFollower, viewerID)
		resp.IsLiked = b.HasMember(entity.RelationLiker, viewerID)
		resp.IsOwner = b.OwnerID == viewerID
	}
	return resp
}

func ToBrandResponses(brands []entity.Brand, viewerID string) []BrandResponse {
	out := make([]BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, ToBrandResponse(b, viewerID))
	}
	return out
}

// BrandListResponse is one page of brands.
type BrandListResponse struct {
	Brands   []BrandResponse `json:"brands"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// ToggleResponse reports the membership after a follow or like toggle.
type ToggleResponse struct {
	BrandID  string `json:"brand_id"`
	Relation string `json:"relation"`
	IsMember bool   `json:"is_member"`
	Message  string `json:"message"`
}

// ToggleMessage returns the user-facing message for a committed toggle.
func ToggleMessage(relation entity.Relation, isMember bool) string {
	switch {
	case relation == entity.RelationFollower && isMember:
		return "Following!"
	case relation == entity.RelationFollower:
		return "Unfollowed"
	case isMember:
		return "Liked!"
	default:
		return "Like removed"
	}
}
