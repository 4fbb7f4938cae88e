package http

import (
	"net/http"
	"strconv"

	"github.com/classbrand/brandnet/internal/domain/entity"
	"github.com/classbrand/brandnet/internal/handler/http/dto"
	"github.com/classbrand/brandnet/internal/handler/http/middleware"
	"github.com/classbrand/brandnet/internal/usecase"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
	"github.com/gin-gonic/gin"
)

type BrandHandler struct {
	brandUsecase usecasecontract.IBrandUseCase
}

func NewBrandHandler(brandUsecase usecasecontract.IBrandUseCase) *BrandHandler {
	return &BrandHandler{brandUsecase: brandUsecase}
}

func (h *BrandHandler) CreateBrandHandler(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req dto.BrandRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	brand, err := h.brandUsecase.CreateBrand(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToBrandResponse(*brand, userID))
}

func (h *BrandHandler) UpdateBrandHandler(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req dto.BrandRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	brand, err := h.brandUsecase.UpdateBrand(c.Request.Context(), c.Param("brandID"), userID, req.ToInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToBrandResponse(*brand, userID))
}

func (h *BrandHandler) DeleteBrandHandler(c *gin.Context) {
	isAdmin := middleware.GetRole(c) == entity.UserRoleAdmin
	if err := h.brandUsecase.DeleteBrand(c.Request.Context(), c.Param("brandID"), middleware.GetUserID(c), isAdmin); err != nil {
		HandleError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Brand deleted successfully")
}

// GetBrandHandler returns one brand. The view flags are set when the request is authenticated.
func (h *BrandHandler) GetBrandHandler(c *gin.Context) {
	brand, err := h.brandUsecase.GetBrand(c.Request.Context(), c.Param("brandID"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToBrandResponse(*brand, middleware.GetUserID(c)))
}

func (h *BrandHandler) ListBrandsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = usecase.NormalizePage(page, pageSize)

	brands, total, err := h.brandUsecase.ListBrands(c.Request.Context(), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.BrandListResponse{
		Brands:   dto.ToBrandResponses(brands, middleware.GetUserID(c)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListOwnerBrandsHandler lists the brands of the user in the :id path
// parameter, or of the caller on /me/brands.
func (h *BrandHandler) ListOwnerBrandsHandler(c *gin.Context) {
	ownerID := c.Param("id")
	if ownerID == "" {
		ownerID = middleware.GetUserID(c)
	}
	brands, err := h.brandUsecase.ListBrandsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToBrandResponses(brands, middleware.GetUserID(c)))
}
