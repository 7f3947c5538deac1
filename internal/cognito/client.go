package cognito

import "context"

// Client defines the Cognito operations the account service relies on.
type Client interface {
	SignUp(ctx context.Context, input SignUpInput) (SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, input ConfirmSignUpInput) error
	Login(ctx context.Context, input LoginInput) (AuthOutput, error)
	RefreshTokens(ctx context.Context, input RefreshInput) (AuthOutput, error)
	GlobalSignOut(ctx context.Context, input GlobalSignOutInput) error
}

// SignUpInput contains the parameters for signing up a new user.
type SignUpInput struct {
	Email    string
	Password string
}

// SignUpOutput contains the result of a successful sign-up.
type SignUpOutput struct {
	UserSub      string
	Confirmed    bool
	CodeDelivery string // e.g., "email"
}

// ConfirmSignUpInput contains the parameters for confirming a sign-up.
type ConfirmSignUpInput struct {
	Email string
	Code  string
}

// LoginInput contains the parameters for logging in a user.
type LoginInput struct {
	Email    string
	Password string
}

// AuthOutput contains tokens returned after successful authentication.
type AuthOutput struct {
	IDToken      string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int32
	TokenType    string
}

// RefreshInput contains the parameters for refreshing tokens.
type RefreshInput struct {
	Email        string
	RefreshToken string
}

// GlobalSignOutInput contains the parameters for signing out globally.
type GlobalSignOutInput struct {
	AccessToken string
}
