package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/tokens"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type UserService struct {
	Repo        *repo.GormRepo
	Secret      []byte
	TokenExpire time.Duration
	Events      events.Publisher
}

func summary(u *models.User) transport.UserSummary {
	return transport.UserSummary{ID: u.ID.String(), Username: u.Username, Email: u.Email}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (*transport.RegisterResult, error) {
	l := logging.FromContext(ctx).With("svc", "user.register")

	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, fail(ErrValidation, "Please enter all fields")
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "status", 400, "reason", "user already exists", "email", email)
			return nil, fail(ErrConflict, "User already exists")
		}
		l.Error("register_error", "status", 500, "reason", "cannot create user", "error", err)
		return nil, err
	}

	token, _, err := tokens.Sign(s.Secret, user.ID.String(), "", s.TokenExpire)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, err
	}

	s.publish(ctx, l, user.ID.String(), events.New(events.UserRegistered, user.ID.String(), summary(&user)))
	l.Info("register_success", "user_id", user.ID)

	return &transport.RegisterResult{Token: token, User: summary(&user)}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*transport.LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "user.login", "email", email)

	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fail(ErrValidation, "Please enter all fields")
	}

	user, err := s.Repo.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 404, "reason", "user not found")
			return nil, fail(ErrNotFound, "User not found")
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "incorrect password")
		return nil, fail(ErrUnauthorized, "Incorrect password")
	}

	token, _, err := tokens.Sign(s.Secret, user.ID.String(), user.Role, s.TokenExpire)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, err
	}

	return &transport.LoginResult{Token: token, Username: user.Username, Role: user.Role}, nil
}

func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "User not found")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes username and email; empty values keep the stored ones.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req transport.UpdateProfileRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.update", "user_id", id)

	user, err := s.Profile(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(req.Username); v != "" {
		user.Username = v
	}
	if v := strings.TrimSpace(req.Email); v != "" && v != user.Email {
		taken, err := s.Repo.EmailTaken(ctx, v, id)
		if err != nil {
			return nil, err
		}
		if taken {
			l.Warn("update_error", "status", 400, "reason", "email in use")
			return nil, fail(ErrConflict, "Email already in use")
		}
		user.Email = v
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, fail(ErrConflict, "Email already in use")
		}
		l.Error("update_error", "status", 500, "error", err)
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	l := logging.FromContext(ctx).With("svc", "user.change_password", "user_id", id)

	if current == "" || next == "" {
		return fail(ErrValidation, "Please enter all fields")
	}

	user, err := s.Profile(ctx, id)
	if err != nil {
		return err
	}
	if !hash.CheckPassword(user.PasswordHash, current) {
		l.Warn("change_password_error", "status", 400, "reason", "invalid current password")
		return fail(ErrValidation, "Invalid current password")
	}

	pwHash, err := hash.HashPassword(next)
	if err != nil {
		return err
	}
	user.PasswordHash = pwHash
	return s.Repo.SaveUser(ctx, user)
}

func (s *UserService) SetProfilePicture(ctx context.Context, id uuid.UUID, path string) (*models.User, error) {
	user, err := s.Profile(ctx, id)
	if err != nil {
		return nil, err
	}
	user.ProfilePicture = path
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) publish(ctx context.Context, l *slog.Logger, key string, ev events.Event) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishEvent(ctx, events.TopicUsers, key, ev); err != nil {
		l.Warn("publish_error", "topic", events.TopicUsers, "type", ev.Type, "error", err)
	}
}
