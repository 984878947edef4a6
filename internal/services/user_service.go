package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"userdir/internal/models"
	"userdir/internal/repositories"
)

// EventPublisher publishes user lifecycle events after successful mutations.
// A nil publisher disables events entirely.
type EventPublisher interface {
	PublishUserEvent(action string, user *models.User) error
}

// Lifecycle event actions.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,}$`)
)

// UserService enforces validation and business invariants for the user
// directory and orchestrates calls into the repository. It holds no cached
// state: every operation re-reads durable storage through the repository.
type UserService struct {
	repo      repositories.UserRepository
	publisher EventPublisher
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates a new UserService. The publisher may be nil; a nil
// logger falls back to a no-op logger.
func NewUserService(repo repositories.UserRepository, publisher EventPublisher, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}

	validate := validator.New()
	// Registration only fails for an empty tag name, so the errors are
	// ignored here.
	_ = validate.RegisterValidation("user_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("user_username", func(fl validator.FieldLevel) bool {
		return len(strings.TrimSpace(fl.Field().String())) >= 3
	})
	_ = validate.RegisterValidation("user_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &UserService{
		repo:      repo,
		publisher: publisher,
		validate:  validate,
		logger:    logger,
	}
}

// CreateUser validates all four fields in order (email, username, phone,
// age), rejects a taken email, and persists the new record.
func (s *UserService) CreateUser(email, username, phone string, age uint32) (*models.User, error) {
	user := &models.User{
		Email:    email,
		Username: username,
		Phone:    phone,
		Age:      age,
	}

	if err := s.validate.Struct(user); err != nil {
		return nil, s.fieldError(err, user)
	}

	existing, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, NewRepositoryError(err)
	}
	if existing != nil {
		return nil, NewUserAlreadyExistsError(email)
	}

	if err := s.repo.Save(user); err != nil {
		return nil, NewRepositoryError(err)
	}

	s.publish(EventUserCreated, user)
	return user, nil
}

// UpdateUser validates username, phone, and age, then overwrites the record
// for an existing email. The email is the lookup key, not new input, so it
// is not re-validated and never changes.
func (s *UserService) UpdateUser(email, username, phone string, age uint32) (*models.User, error) {
	user := &models.User{
		Email:    email,
		Username: username,
		Phone:    phone,
		Age:      age,
	}

	if err := s.validate.StructExcept(user, "Email"); err != nil {
		return nil, s.fieldError(err, user)
	}

	existing, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, NewRepositoryError(err)
	}
	if existing == nil {
		return nil, NewUserNotFoundError(email)
	}

	if err := s.repo.Save(user); err != nil {
		return nil, NewRepositoryError(err)
	}

	s.publish(EventUserUpdated, user)
	return user, nil
}

// GetUser looks up a record by email.
func (s *UserService) GetUser(email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, NewRepositoryError(err)
	}
	if user == nil {
		return nil, NewUserNotFoundError(email)
	}
	return user, nil
}

// ListUsers returns every record. Order is unspecified.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.repo.FindAll()
	if err != nil {
		return nil, NewRepositoryError(err)
	}
	return users, nil
}

// DeleteUser removes a record by email.
func (s *UserService) DeleteUser(email string) error {
	existed, err := s.repo.Delete(email)
	if err != nil {
		return NewRepositoryError(err)
	}
	if !existed {
		return NewUserNotFoundError(email)
	}

	s.publish(EventUserDeleted, &models.User{Email: email})
	return nil
}

// fieldError maps the first failing field to its error kind. Struct fields
// are validated in declaration order, so the first FieldError is always the
// first rule that failed and later fields are never reported.
func (s *UserService) fieldError(err error, user *models.User) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	switch fieldErrs[0].Field() {
	case "Email":
		return NewInvalidEmailError(user.Email)
	case "Username":
		return NewInvalidUsernameError()
	case "Phone":
		return NewInvalidPhoneError()
	default:
		return NewInvalidAgeError()
	}
}

// publish sends a lifecycle event when a publisher is configured. Publishing
// is best-effort: failures are logged and never fail the operation.
func (s *UserService) publish(action string, user *models.User) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishUserEvent(action, user); err != nil {
		s.logger.Warn("failed to publish user event",
			zap.String("action", action),
			zap.String("email", user.Email),
			zap.Error(err),
		)
	}
}
