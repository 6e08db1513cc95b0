package services

import (
	"context"
	"crypto/subtle"
	"os"
	"strings"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/middleware"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

const AUTH_SVC = "auth_svc"

// AuthService issues admin tokens and provides the JWT middleware.
type AuthService struct {
	appContext.DefaultService

	jwtSvc            *JWTService
	adminEmail        string
	adminPasswordHash []byte
}

func NewAuthService(jwtSvc *JWTService, adminEmail, adminPasswordHash string) *AuthService {
	return &AuthService{
		jwtSvc:            jwtSvc,
		adminEmail:        shared.SanitizeEmail(adminEmail),
		adminPasswordHash: []byte(adminPasswordHash),
	}
}

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *appContext.Context) error {
	svc.adminEmail = shared.SanitizeEmail(os.Getenv("ADMIN_EMAIL"))
	svc.adminPasswordHash = []byte(os.Getenv("ADMIN_PASSWORD_HASH"))
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	if svc.adminEmail == "" || len(svc.adminPasswordHash) == 0 {
		log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD_HASH not set, admin login disabled")
	}
	return nil
}

// AdminLogin checks the configured admin credentials and returns an admin token.
func (svc *AuthService) AdminLogin(_ context.Context, req dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if svc.adminEmail == "" || len(svc.adminPasswordHash) == 0 {
		return nil, shared.NewUnauthorizedError(nil, "Invalid credentials")
	}

	email := shared.SanitizeEmail(req.Email)
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(svc.adminEmail)) == 1
	// Always run bcrypt so a wrong email costs the same as a wrong password.
	passwordErr := bcrypt.CompareHashAndPassword(svc.adminPasswordHash, []byte(req.Password))

	if !emailOK || passwordErr != nil {
		log.WithField("email", email).Info("Admin login rejected")
		return nil, shared.NewUnauthorizedError(passwordErr, "Invalid credentials")
	}

	token, err := svc.jwtSvc.ToJWT("admin:"+email, shared.RoleAdmin)
	if err != nil {
		return nil, shared.NewInternalError(err)
	}

	return &dto.AdminLoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(svc.jwtSvc.AccessTokenDuration.Seconds()),
	}, nil
}

func (svc *AuthService) claimsFrom(c *fiber.Ctx) (*CustomClaims, error) {
	token, err := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return nil, err
	}
	return svc.jwtSvc.VerifyJWTToken(token)
}

func setIdentity(c *fiber.Ctx, claims *CustomClaims) {
	c.Locals(shared.UserID, claims.UserID)
	c.Locals(shared.UserRole, claims.Role)
}

// OptionalAuth attaches the caller's identity when a valid bearer token is present
// and ignores anything else.
func (svc *AuthService) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		if claims, err := svc.claimsFrom(c); err == nil {
			setIdentity(c, claims)
		}
		return c.Next()
	}
}

func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := svc.claimsFrom(c)
		if err != nil {
			return shared.ResponseUnauthorized(c)
		}
		setIdentity(c, claims)
		return c.Next()
	}
}

// RequireAdmin admits only admin tokens.
func (svc *AuthService) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := svc.claimsFrom(c)
		if err != nil {
			return shared.ResponseUnauthorized(c)
		}
		if !claims.IsAdmin() {
			return shared.ResponseForbidden(c)
		}
		setIdentity(c, claims)
		return c.Next()
	}
}

// UserIDFrom returns the authenticated user id, or "" for anonymous requests.
func UserIDFrom(c *fiber.Ctx) string {
	if id, ok := c.Locals(shared.UserID).(string); ok {
		return strings.TrimSpace(id)
	}
	return ""
}
