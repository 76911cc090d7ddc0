package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/user"
)

type userApi struct {
	svc  *user.Service
	auth *tokenAuth
	binder
}

func registerUserAPI(g *echo.Group, jwt, usr echo.MiddlewareFunc, b binder, auth *tokenAuth, svc *user.Service) {
	api := userApi{svc: svc, auth: auth, binder: b}

	ug := g.Group("/auth")

	// un-authed endpoints
	ug.POST("/register", api.register)
	ug.POST("/login", api.login)

	// authed endpoints
	ag := ug.Group("", jwt, usr)
	ag.GET("/me", api.me)
	ag.PUT("/profile", api.updateProfile)
	ag.POST("/change-password", api.changePassword)
	ag.POST("/token-refresh", api.refreshToken)
}

// Handlers

func (api *userApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := api.bind(ctx, &data, "NewUser"); err != nil {
		return err
	}

	usr, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := api.bind(ctx, &data, "LoginRequest"); err != nil {
		return err
	}

	usr, token, err := api.auth.authenticate(ctx.Request().Context(), data.Username, data.Password, api.svc)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{AccessToken: token, TokenType: tokenType, User: &usr})
}

func (api *userApi) me(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) updateProfile(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	var data user.UpdateProfile
	if err := api.bind(ctx, &data, "UpdateProfile"); err != nil {
		return err
	}

	usr, err = api.svc.UpdateProfile(ctx.Request().Context(), usr, data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) changePassword(ctx echo.Context) error {
	usr, err := contextUser(ctx)
	if err != nil {
		return err
	}
	var data user.ChangePassword
	if err := api.bind(ctx, &data, "ChangePassword"); err != nil {
		return err
	}

	if err := api.svc.ChangePassword(ctx.Request().Context(), usr, data); err != nil {
		return errors.Wrap(err, "changing password")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}

func (api *userApi) refreshToken(ctx echo.Context) error {
	token, err := api.auth.refreshToken(ctx)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{AccessToken: token, TokenType: tokenType})
}

type (
	// LoginRequest accepts either the username or the email in Username; Email is an alias.
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Email    string `json:"email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AccessToken string     `json:"access_token"`
		TokenType   string     `json:"token_type"`
		User        *user.User `json:"user,omitempty"`
	}

	MessageResponse struct {
		Message string `json:"message"`
	}
)

func (lr *LoginRequest) Clean() {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	if lr.Username == "" {
		lr.Username = core.CleanString(lr.Email, true /* lower */)
	}
}
