package http

import (
	"net/http"

	"github.com/classbrand/brandnet/internal/domain/entity"
	"github.com/classbrand/brandnet/internal/handler/http/dto"
	"github.com/classbrand/brandnet/internal/handler/http/middleware"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	toggleUsecase usecasecontract.IMembershipToggleUseCase
	brandUsecase  usecasecontract.IBrandUseCase
}

func NewInteractionHandler(toggleUsecase usecasecontract.IMembershipToggleUseCase, brandUsecase usecasecontract.IBrandUseCase) *InteractionHandler {
	return &InteractionHandler{
		toggleUsecase: toggleUsecase,
		brandUsecase:  brandUsecase,
	}
}

func (h *InteractionHandler) FollowBrandHandler(c *gin.Context) {
	h.toggle(c, entity.RelationFollower)
}

func (h *InteractionHandler) LikeBrandHandler(c *gin.Context) {
	h.toggle(c, entity.RelationLiker)
}

func (h *InteractionHandler) toggle(c *gin.Context, relation entity.Relation) {
	brandID := c.Param("brandID")
	userID := middleware.GetUserID(c)
	if userID == "" {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	// A cached owner lets the toggle reject self relations before opening a
	// transaction. Otherwise the transaction checks the stored owner.
	ownerID, _ := h.brandUsecase.CachedOwner(c.Request.Context(), brandID)

	isMember, err := h.toggleUsecase.Toggle(c.Request.Context(), brandID, userID, relation, ownerID)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ToggleResponse{
		BrandID:  brandID,
		Relation: string(relation),
		IsMember: isMember,
		Message:  dto.ToggleMessage(relation, isMember),
	})
}
