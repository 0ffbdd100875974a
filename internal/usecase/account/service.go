package account

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/pkg/token"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 72 // bcrypt 只使用前72字节
)

type Service struct {
	accountRepo domain.AccountRepository
	jwtSecret   []byte
	jwtTTL      time.Duration
}

var _ domain.AccountUsecase = (*Service)(nil)

// NewService will create a new account service object
func NewService(a domain.AccountRepository, jwtSecret []byte, jwtTTL time.Duration) *Service {
	return &Service{
		accountRepo: a,
		jwtSecret:   jwtSecret,
		jwtTTL:      jwtTTL,
	}
}

func (s *Service) Register(ctx context.Context, nickname, username, password string) (domain.Account, error) {
	nickname = strings.TrimSpace(nickname)
	username = strings.TrimSpace(username)
	if nickname == "" || username == "" {
		return domain.Account{}, domain.ErrBadParamInput
	}
	if utf8.RuneCountInString(password) < minPasswordLength || len(password) > maxPasswordLength {
		return domain.Account{}, domain.ErrBadParamInput
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.Errorf("failed to hash password: %v", err)
		return domain.Account{}, domain.ErrInternalServerError
	}

	a := domain.Account{
		Nickname: nickname,
		Username: username,
		Password: string(hashed),
	}
	if err := s.accountRepo.Insert(ctx, &a); err != nil {
		return domain.Account{}, err
	}

	a.Password = ""
	return a, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	a, err := s.accountRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}

	signed, err := token.Generate(s.jwtSecret, a.ID, a.Username, s.jwtTTL)
	if err != nil {
		logrus.Errorf("failed to sign token for account %d: %v", a.ID, err)
		return "", domain.ErrInternalServerError
	}
	return signed, nil
}
