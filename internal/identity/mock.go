package identity

import "context"

// MockProvider permite tests sin un proveedor de identidad real.
type MockProvider struct {
	SignUpFunc         func(ctx context.Context, input SignUpInput) (User, error)
	SignInFunc         func(ctx context.Context, email, password string) (Session, error)
	GetUserFunc        func(ctx context.Context, accessToken string) (User, error)
	GetUserByEmailFunc func(ctx context.Context, email string) (User, error)
	ResendFunc         func(ctx context.Context, email string) error
}

func (m *MockProvider) SignUp(ctx context.Context, input SignUpInput) (User, error) {
	if m.SignUpFunc == nil {
		return User{}, nil
	}
	return m.SignUpFunc(ctx, input)
}

func (m *MockProvider) SignInWithPassword(ctx context.Context, email, password string) (Session, error) {
	if m.SignInFunc == nil {
		return Session{}, nil
	}
	return m.SignInFunc(ctx, email, password)
}

func (m *MockProvider) GetUser(ctx context.Context, accessToken string) (User, error) {
	if m.GetUserFunc == nil {
		return User{}, ErrTokenInvalid
	}
	return m.GetUserFunc(ctx, accessToken)
}

func (m *MockProvider) GetUserByEmail(ctx context.Context, email string) (User, error) {
	if m.GetUserByEmailFunc == nil {
		return User{}, ErrUserNotFound
	}
	return m.GetUserByEmailFunc(ctx, email)
}

func (m *MockProvider) Resend(ctx context.Context, email string) error {
	if m.ResendFunc == nil {
		return nil
	}
	return m.ResendFunc(ctx, email)
}
