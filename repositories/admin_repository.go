package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrTicketNotFound  = errors.New("ticket not found")
)

type AccountFilter struct {
	Search string
}

type PaymentFilter struct {
	AccountID *int
}

type TicketFilter struct {
	Status *models.TicketStatus
}

// AdminRepository covers the backoffice endpoints. All of them require an admin token.
type AdminRepository interface {
	ListAccounts(ctx context.Context, auth apiclient.Auth, filter AccountFilter) ([]models.Account, error)
	CreateAccount(ctx context.Context, auth apiclient.Auth, input models.AccountInput) (*models.Account, error)
	UpdateAccount(ctx context.Context, auth apiclient.Auth, id int, input models.AccountUpdate) (*models.Account, error)

	ListPayments(ctx context.Context, auth apiclient.Auth, filter PaymentFilter) ([]models.Payment, error)
	CreatePayment(ctx context.Context, auth apiclient.Auth, input models.PaymentInput) (*models.Payment, error)

	ListTickets(ctx context.Context, auth apiclient.Auth, filter TicketFilter) ([]models.Ticket, error)
	GetTicket(ctx context.Context, auth apiclient.Auth, id int) (*models.Ticket, error)
	ReplyTicket(ctx context.Context, auth apiclient.Auth, id int, input models.TicketReplyInput) (*models.Ticket, error)
	CloseTicket(ctx context.Context, auth apiclient.Auth, id int) (*models.Ticket, error)
}

type apiAdminRepository struct {
	client *apiclient.Client
}

func NewAPIAdminRepository(client *apiclient.Client) AdminRepository {
	return &apiAdminRepository{client: client}
}

func (r *apiAdminRepository) ListAccounts(ctx context.Context, auth apiclient.Auth, filter AccountFilter) ([]models.Account, error) {
	q := url.Values{}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	accounts := []models.Account{}
	if err := r.client.Get(ctx, auth, withQuery("/admin/accounts", q), &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *apiAdminRepository) CreateAccount(ctx context.Context, auth apiclient.Auth, input models.AccountInput) (*models.Account, error) {
	var a models.Account
	if err := r.client.Post(ctx, auth, "/admin/accounts", input, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *apiAdminRepository) UpdateAccount(ctx context.Context, auth apiclient.Auth, id int, input models.AccountUpdate) (*models.Account, error) {
	var a models.Account
	err := r.client.Patch(ctx, auth, fmt.Sprintf("/admin/accounts/%d", id), input, &a)
	if err != nil {
		return nil, checkNotFound(err, ErrAccountNotFound)
	}
	return &a, nil
}

func (r *apiAdminRepository) ListPayments(ctx context.Context, auth apiclient.Auth, filter PaymentFilter) ([]models.Payment, error) {
	q := url.Values{}
	if filter.AccountID != nil {
		q.Set("account_id", strconv.Itoa(*filter.AccountID))
	}
	payments := []models.Payment{}
	if err := r.client.Get(ctx, auth, withQuery("/admin/payments", q), &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *apiAdminRepository) CreatePayment(ctx context.Context, auth apiclient.Auth, input models.PaymentInput) (*models.Payment, error) {
	var p models.Payment
	err := r.client.Post(ctx, auth, "/admin/payments", input, &p)
	if err != nil {
		return nil, checkNotFound(err, ErrAccountNotFound)
	}
	return &p, nil
}

func (r *apiAdminRepository) ListTickets(ctx context.Context, auth apiclient.Auth, filter TicketFilter) ([]models.Ticket, error) {
	q := url.Values{}
	if filter.Status != nil {
		q.Set("status", string(*filter.Status))
	}
	tickets := []models.Ticket{}
	if err := r.client.Get(ctx, auth, withQuery("/admin/tickets", q), &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *apiAdminRepository) GetTicket(ctx context.Context, auth apiclient.Auth, id int) (*models.Ticket, error) {
	var t models.Ticket
	err := r.client.Get(ctx, auth, fmt.Sprintf("/admin/tickets/%d", id), &t)
	if err != nil {
		return nil, checkNotFound(err, ErrTicketNotFound)
	}
	return &t, nil
}

func (r *apiAdminRepository) ReplyTicket(ctx context.Context, auth apiclient.Auth, id int, input models.TicketReplyInput) (*models.Ticket, error) {
	var t models.Ticket
	err := r.client.Post(ctx, auth, fmt.Sprintf("/admin/tickets/%d/replies", id), input, &t)
	if err != nil {
		return nil, checkNotFound(err, ErrTicketNotFound)
	}
	return &t, nil
}

func (r *apiAdminRepository) CloseTicket(ctx context.Context, auth apiclient.Auth, id int) (*models.Ticket, error) {
	var t models.Ticket
	err := r.client.Post(ctx, auth, fmt.Sprintf("/admin/tickets/%d/close", id), nil, &t)
	if err != nil {
		return nil, checkNotFound(err, ErrTicketNotFound)
	}
	return &t, nil
}
