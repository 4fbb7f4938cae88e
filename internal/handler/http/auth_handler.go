package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/classbrand/brandnet/internal/domain/contract"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookie = "oauthState"
	googleUserInfo   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type AuthHandler struct {
	UserUseCase usecasecontract.IUserUseCase
	OAuthConfig *oauth2.Config
	randomGen   contract.IRandomGenerator
	cookieHost  string
}

func NewAuthHandler(uc usecasecontract.IUserUseCase, cfg usecasecontract.IConfigProvider, randomGen contract.IRandomGenerator) *AuthHandler {
	baseURL := cfg.GetAppBaseURL()
	host := ""
	if u, err := url.Parse(baseURL); err == nil {
		host = u.Hostname()
	}
	return &AuthHandler{
		UserUseCase: uc,
		OAuthConfig: &oauth2.Config{
			ClientID:     cfg.GetGoogleClientID(),
			ClientSecret: cfg.GetGoogleClientSecret(),
			RedirectURL:  baseURL + "/api/v1/auth/google/callback",
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		randomGen:  randomGen,
		cookieHost: host,
	}
}

// UserInfo is the subset of the Google userinfo payload used for sign-in.
type UserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (h *AuthHandler) HandleGoogleLogin(ctx *gin.Context) {
	if h.OAuthConfig.ClientID == "" {
		ErrorHandler(ctx, http.StatusNotImplemented, "Google sign-in is not configured")
		return
	}
	state, err := h.randomGen.GenerateRandomToken(16)
	if err != nil {
		ErrorHandler(ctx, http.StatusInternalServerError, "failed to start sign-in")
		return
	}
	ctx.SetCookie(oauthStateCookie, state, 300, "/", h.cookieHost, false, true)

	ctx.Redirect(http.StatusTemporaryRedirect, h.OAuthConfig.AuthCodeURL(state))
}

func (h *AuthHandler) HandleGoogleCallback(ctx *gin.Context) {
	state := ctx.Query("state")
	cookieState, err := ctx.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != cookieState {
		ErrorHandler(ctx, http.StatusUnauthorized, "invalid CSRF state token")
		return
	}
	ctx.SetCookie(oauthStateCookie, "", -1, "/", h.cookieHost, false, true)

	code := ctx.Query("code")
	if code == "" {
		ErrorHandler(ctx, http.StatusBadRequest, "authorization code not provided")
		return
	}

	requestCtx := ctx.Request.Context()
	token, err := h.OAuthConfig.Exchange(requestCtx, code)
	if err != nil {
		ErrorHandler(ctx, http.StatusBadGateway, fmt.Sprintf("failed to exchange authorization code: %v", err))
		return
	}

	client := h.OAuthConfig.Client(requestCtx, token)
	resp, err := client.Get(googleUserInfo)
	if err != nil {
		ErrorHandler(ctx, http.StatusBadGateway, fmt.Sprintf("failed to get user info: %v", err))
		return
	}
	defer resp.Body.Close()

	var userInfo UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		ErrorHandler(ctx, http.StatusBadGateway, fmt.Sprintf("failed to decode user info: %v", err))
		return
	}

	var photoURL *string
	if userInfo.Picture != "" {
		photoURL = &userInfo.Picture
	}

	accessToken, refreshToken, err := h.UserUseCase.LoginWithOAuth(requestCtx, userInfo.Email, userInfo.Name, photoURL)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":       "login successful",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}
