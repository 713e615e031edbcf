package service

import (
	"context"
	"strings"
	"time"

	"medassist-be/internal/dto"
	"medassist-be/internal/entity"
	"medassist-be/internal/pkg/logger"
	"medassist-be/internal/pkg/serverutils"
	"medassist-be/internal/repository/specification"
	"medassist-be/internal/repository/unitofwork"
	"medassist-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtSecret  string
	tokenTTL   time.Duration
	events     events.Publisher
	logger     logger.ILogger
}

// NewAuthService takes an optional event publisher; nil disables user.registered events.
func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	jwtSecret string,
	tokenTTL time.Duration,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		events:     eventPublisher,
		logger:     log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	taken, err := uow.UserRepository().Count(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrUsernameTaken
	}
	taken, err = uow.UserRepository().Count(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "user registered", map[string]interface{}{"user_id": user.Id.String()})
	if s.events != nil {
		if err := s.events.Publish(ctx, events.NewUserRegistered(user.Id.String(), user.Username)); err != nil {
			s.logger.Warn("AUTH", "failed to publish user.registered", map[string]interface{}{"error": err.Error()})
		}
	}
	return &dto.RegisterResponse{Id: user.Id, Username: user.Username, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: strings.TrimSpace(req.Username)})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := serverutils.IssueToken(s.jwtSecret, user.Id, user.Username, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "user logged in", map[string]interface{}{"user_id": user.Id.String()})
	return &dto.LoginResponse{AccessToken: token, Username: user.Username}, nil
}
