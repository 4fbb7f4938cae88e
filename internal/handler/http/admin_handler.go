package http

import (
	"net/http"
	"strconv"

	"github.com/classbrand/brandnet/internal/handler/http/dto"
	"github.com/classbrand/brandnet/internal/handler/http/middleware"
	"github.com/classbrand/brandnet/internal/usecase"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the moderation dashboard. Every route sits behind
// middleware.AdminOnly.
type AdminHandler struct {
	adminUsecase usecasecontract.IAdminUseCase
	brandUsecase usecasecontract.IBrandUseCase
}

func NewAdminHandler(adminUsecase usecasecontract.IAdminUseCase, brandUsecase usecasecontract.IBrandUseCase) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		brandUsecase: brandUsecase,
	}
}

func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.adminUsecase.ListUsers(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponses(users))
}

func (h *AdminHandler) ListBrandsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "100"))
	page, pageSize = usecase.NormalizePage(page, pageSize)

	brands, total, err := h.brandUsecase.ListBrands(c.Request.Context(), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.BrandListResponse{
		Brands:   dto.ToBrandResponses(brands, ""),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *AdminHandler) ToggleBanHandler(c *gin.Context) {
	if c.Param("id") == middleware.GetUserID(c) {
		ErrorHandler(c, http.StatusBadRequest, "You cannot ban yourself")
		return
	}
	user, err := h.adminUsecase.ToggleBan(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

func (h *AdminHandler) MakeAdminHandler(c *gin.Context) {
	user, err := h.adminUsecase.MakeAdmin(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	if c.Param("id") == middleware.GetUserID(c) {
		ErrorHandler(c, http.StatusBadRequest, "You cannot delete yourself")
		return
	}
	if err := h.adminUsecase.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "User and their brands deleted")
}

func (h *AdminHandler) DeleteBrandHandler(c *gin.Context) {
	if err := h.brandUsecase.DeleteBrand(c.Request.Context(), c.Param("brandID"), middleware.GetUserID(c), true); err != nil {
		HandleError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Brand deleted successfully")
}

func (h *AdminHandler) StatsHandler(c *gin.Context) {
	stats, err := h.adminUsecase.Stats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, stats)
}
