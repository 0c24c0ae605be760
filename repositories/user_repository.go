package repositories

import (
	"context"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/models"
)

// UserRepository covers the authentication endpoints of the backend.
type UserRepository interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
	Me(ctx context.Context, auth apiclient.Auth) (*models.Me, error)
	ForgotPassword(ctx context.Context, input models.ForgotPasswordInput) error
	ResetPassword(ctx context.Context, input models.ResetPasswordInput) error
}

type apiUserRepository struct {
	client *apiclient.Client
}

func NewAPIUserRepository(client *apiclient.Client) UserRepository {
	return &apiUserRepository{client: client}
}

func (r *apiUserRepository) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := r.client.Post(ctx, nil, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *apiUserRepository) Me(ctx context.Context, auth apiclient.Auth) (*models.Me, error) {
	var me models.Me
	if err := r.client.Get(ctx, auth, "/auth/me", &me); err != nil {
		return nil, err
	}
	return &me, nil
}

func (r *apiUserRepository) ForgotPassword(ctx context.Context, input models.ForgotPasswordInput) error {
	return r.client.Post(ctx, nil, "/auth/forgot-password", input, nil)
}

func (r *apiUserRepository) ResetPassword(ctx context.Context, input models.ResetPasswordInput) error {
	return r.client.Post(ctx, nil, "/auth/reset-password", input, nil)
}
