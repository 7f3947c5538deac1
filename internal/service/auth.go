package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mindtrackhq/mindtrack-api/internal/cognito"
	"github.com/mindtrackhq/mindtrack-api/internal/repository"
)

// AuthService handles account registration and login through Cognito,
// provisioning the local user row on first login.
type AuthService struct {
	cognitoClient cognito.Client
	userRepo      repository.UserRepository
}

func NewAuthService(cognitoClient cognito.Client, userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		cognitoClient: cognitoClient,
		userRepo:      userRepo,
	}
}

type SignUpInput struct {
	Email    string
	Password string
}

type SignUpOutput struct {
	UserSub      string `json:"user_sub"`
	Confirmed    bool   `json:"confirmed"`
	CodeDelivery string `json:"code_delivery"`
}

type ConfirmSignUpInput struct {
	Email string
	Code  string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	IDToken      string `json:"id_token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int32  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

type RefreshInput struct {
	Email        string
	RefreshToken string
}

type RefreshOutput struct {
	IDToken     string `json:"id_token"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int32  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type LogoutInput struct {
	AccessToken string
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (SignUpOutput, error) {
	if input.Email == "" {
		return SignUpOutput{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.Password == "" {
		return SignUpOutput{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	out, err := s.cognitoClient.SignUp(ctx, cognito.SignUpInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return SignUpOutput{}, err
	}

	return SignUpOutput{
		UserSub:      out.UserSub,
		Confirmed:    out.Confirmed,
		CodeDelivery: out.CodeDelivery,
	}, nil
}

func (s *AuthService) ConfirmSignUp(ctx context.Context, input ConfirmSignUpInput) error {
	if input.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	return s.cognitoClient.ConfirmSignUp(ctx, cognito.ConfirmSignUpInput{
		Email: input.Email,
		Code:  input.Code,
	})
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginOutput, error) {
	if input.Email == "" {
		return LoginOutput{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.Password == "" {
		return LoginOutput{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	authOut, err := s.cognitoClient.Login(ctx, cognito.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return LoginOutput{}, err
	}

	// Extract sub from ID token payload (no signature verification needed — just issued by Cognito)
	sub, err := extractSub(authOut.IDToken)
	if err != nil {
		return LoginOutput{}, fmt.Errorf("failed to extract sub from id token: %w", err)
	}

	// Create or update user in DB
	if _, err := s.userRepo.GetOrCreate(ctx, sub, input.Email); err != nil {
		return LoginOutput{}, fmt.Errorf("failed to get or create user: %w", err)
	}

	return LoginOutput{
		IDToken:      authOut.IDToken,
		AccessToken:  authOut.AccessToken,
		RefreshToken: authOut.RefreshToken,
		ExpiresIn:    authOut.ExpiresIn,
		TokenType:    authOut.TokenType,
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (RefreshOutput, error) {
	if input.Email == "" {
		return RefreshOutput{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.RefreshToken == "" {
		return RefreshOutput{}, fmt.Errorf("%w: refresh_token is required", ErrInvalidInput)
	}

	authOut, err := s.cognitoClient.RefreshTokens(ctx, cognito.RefreshInput{
		Email:        input.Email,
		RefreshToken: input.RefreshToken,
	})
	if err != nil {
		return RefreshOutput{}, err
	}

	return RefreshOutput{
		IDToken:     authOut.IDToken,
		AccessToken: authOut.AccessToken,
		ExpiresIn:   authOut.ExpiresIn,
		TokenType:   authOut.TokenType,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.AccessToken == "" {
		return fmt.Errorf("%w: access_token is required", ErrInvalidInput)
	}

	return s.cognitoClient.GlobalSignOut(ctx, cognito.GlobalSignOutInput{
		AccessToken: input.AccessToken,
	})
}

// extractSub decodes the JWT payload (without verifying signature) and extracts the "sub" claim.
func extractSub(idToken string) (string, error) {
	parts := strings.Split(idToken, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid JWT format")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("failed to decode JWT payload: %w", err)
	}

	var claims struct {
		Sub string `json:"sub"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", fmt.Errorf("failed to parse JWT claims: %w", err)
	}
	if claims.Sub == "" {
		return "", fmt.Errorf("sub claim not found in JWT")
	}

	return claims.Sub, nil
}
