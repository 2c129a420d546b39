package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	middleware "github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/upload"
)

type UserHTTP struct {
	Svc     *service.UserService
	Uploads *upload.Storage
}

type messageBody struct {
	Message string `json:"message"`
}

func identity(c echo.Context) (middleware.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return middleware.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Access denied, please login")
	}
	return id, nil
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "register", "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(l, "register", validationMessage(err, "Please enter all fields"), err)
	}

	res, err := h.Svc.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return failed(l, "register", err)
	}

	l.Info("register_success", "user_id", res.User.ID)
	return c.JSON(http.StatusCreated, res)
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login", "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(l, "login", validationMessage(err, "Please provide email and password"), err)
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return failed(l, "login", err)
	}

	l.Info("login_success")
	return c.JSON(http.StatusOK, res)
}

func (h *UserHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.profile")

	id, err := identity(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Profile(ctx, id.UserID)
	if err != nil {
		return failed(l, "profile", err)
	}
	return c.JSON(http.StatusOK, transport.ProfileResult{User: user})
}

func (h *UserHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update")

	id, err := identity(c)
	if err != nil {
		return err
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_profile", "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(l, "update_profile", validationMessage(err, "Please enter all fields"), err)
	}

	user, err := h.Svc.UpdateProfile(ctx, id.UserID, req)
	if err != nil {
		return failed(l, "update_profile", err)
	}

	l.Info("update_profile_success", "user_id", id.UserID)
	return c.JSON(http.StatusOK, transport.ProfileResult{User: user})
}

func (h *UserHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.change_password")

	id, err := identity(c)
	if err != nil {
		return err
	}

	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "change_password", "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(l, "change_password", validationMessage(err, "Please enter all fields"), err)
	}

	if err := h.Svc.ChangePassword(ctx, id.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return failed(l, "change_password", err)
	}

	l.Info("change_password_success", "user_id", id.UserID)
	return c.String(http.StatusOK, "Password updated successfully")
}

func (h *UserHTTP) UploadProfilePicture(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.upload_profile_picture")

	id, err := identity(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("profilePicture")
	if err != nil {
		return badRequest(l, "upload_profile_picture", "No file uploaded", err)
	}

	// the user must exist before anything is written to disk
	if _, err := h.Svc.Profile(ctx, id.UserID); err != nil {
		return failed(l, "upload_profile_picture", err)
	}

	path, err := h.Uploads.Save(upload.BucketProfilePictures, fh)
	if err != nil {
		return failed(l, "upload_profile_picture", err)
	}

	if _, err := h.Svc.SetProfilePicture(ctx, id.UserID, path); err != nil {
		_ = h.Uploads.Remove(path)
		return failed(l, "upload_profile_picture", err)
	}

	l.Info("upload_profile_picture_success", "user_id", id.UserID, "path", path)
	return c.JSON(http.StatusOK, messageBody{Message: "Profile picture updated successfully"})
}
