package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/token-demo/internal/auth"
	"github.com/spec-kit/token-demo/internal/config"
	"github.com/spec-kit/token-demo/internal/domain"
	"github.com/spec-kit/token-demo/internal/observability"
	"github.com/spec-kit/token-demo/internal/report"
	apperrors "github.com/spec-kit/token-demo/pkg/util/errorutil"
)

// TokenManager issues and verifies tokens against an explicit key.
type TokenManager interface {
	Issue(claims auth.Claims, expiresAt time.Time, key *auth.SigningKey) (string, error)
	Verify(token string, key *auth.SigningKey) (auth.Claims, error)
}

// DemoService runs the issue-then-verify pipeline once.
type DemoService struct {
	algorithm auth.Algorithm
	ttl       time.Duration
	username  string
	role      domain.Role

	ids      *domain.IDAllocator
	tokens   TokenManager
	reporter *report.Reporter
	metrics  *observability.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// DemoDependencies encapsulates collaborators for the demo service.
type DemoDependencies struct {
	IDs      *domain.IDAllocator
	Tokens   TokenManager
	Reporter *report.Reporter
	Metrics  *observability.Metrics
	Logger   *zap.Logger
	Now      func() time.Time
}

// NewDemoService builds the service, resolving the configured algorithm and role.
func NewDemoService(cfg config.Config, deps DemoDependencies) (*DemoService, error) {
	alg, err := auth.ParseAlgorithm(cfg.Token.Algorithm)
	if err != nil {
		return nil, apperrors.NewInvalidConfig(fmt.Errorf("invalid TOKEN_ALGORITHM: %w", err))
	}
	role, err := domain.ParseRole(cfg.Demo.Role)
	if err != nil {
		return nil, apperrors.NewInvalidConfig(fmt.Errorf("invalid DEMO_ROLE: %w", err))
	}
	if cfg.Token.TTL < config.MinTokenTTL {
		return nil, apperrors.NewInvalidConfig(
			fmt.Errorf("invalid TOKEN_TTL %s: must be at least %s", cfg.Token.TTL, config.MinTokenTTL))
	}
	if deps.Reporter == nil {
		return nil, errors.New("reporter is required")
	}

	s := &DemoService{
		algorithm: alg,
		ttl:       cfg.Token.TTL,
		username:  cfg.Demo.Username,
		role:      role,
		ids:       deps.IDs,
		tokens:    deps.Tokens,
		reporter:  deps.Reporter,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		now:       deps.Now,
	}
	if s.ids == nil {
		s.ids = &domain.IDAllocator{}
	}
	if s.tokens == nil {
		s.tokens = auth.NewTokenManager()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// Run provisions a key, issues a token for the configured user, reports it,
// then verifies it and reports the recovered claims. Key provisioning and
// issuance failures are returned; verification and reporting failures are
// reported as a line and Run returns nil.
func (s *DemoService) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := auth.GenerateSigningKey(s.algorithm)
	if err != nil {
		return fmt.Errorf("provision signing key: %w", err)
	}
	s.logger.Debug("signing key provisioned", zap.Object("key", key))

	user := domain.NewUser(s.ids, s.role, s.username)
	claims := auth.BuildClaims(user)

	expiresAt := s.now().Add(s.ttl)
	token, err := s.tokens.Issue(claims, expiresAt, key)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	s.metrics.RecordIssued(string(s.algorithm))
	s.logger.Debug("token issued",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.Time("expires_at", expiresAt),
	)

	s.reporter.Token(token)

	verified, err := s.tokens.Verify(token, key)
	if err != nil {
		code := apperrors.CodeOf(err)
		s.metrics.RecordVerification(code)
		s.logger.Warn("token verification failed", zap.String("code", code), zap.Error(err))
		s.reporter.Error(err)
		return nil
	}
	s.metrics.RecordVerification(observability.ResultOK)

	if err := s.reporter.Claims(verified); err != nil {
		s.logger.Warn("claims report failed", zap.String("code", apperrors.CodeOf(err)), zap.Error(err))
		s.reporter.Error(err)
	}
	return nil
}
