package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/repositories"
	"github.com/padelhub/padel-web/storage"
)

type AdminService interface {
	ListAccounts(ctx context.Context, auth apiclient.Auth, filter repositories.AccountFilter) ([]models.Account, error)
	CreateAccount(ctx context.Context, auth apiclient.Auth, input models.AccountInput) (*models.Account, error)
	UpdateAccount(ctx context.Context, auth apiclient.Auth, id int, input models.AccountUpdate) (*models.Account, error)

	ListPayments(ctx context.Context, auth apiclient.Auth, filter repositories.PaymentFilter) ([]models.Payment, error)
	// CreatePayment registers a payment. receiptKey names a receipt uploaded
	// beforehand; it is deleted again when the backend rejects the payment.
	CreatePayment(ctx context.Context, auth apiclient.Auth, input models.PaymentInput, receiptKey string) (*models.Payment, error)
	UploadReceipt(ctx context.Context, accountID int, contentType string, body io.Reader) (*storage.UploadResult, error)

	ListTickets(ctx context.Context, auth apiclient.Auth, filter repositories.TicketFilter) ([]models.Ticket, error)
	GetTicket(ctx context.Context, auth apiclient.Auth, id int) (*models.Ticket, error)
	ReplyTicket(ctx context.Context, auth apiclient.Auth, id int, input models.TicketReplyInput) (*models.Ticket, error)
	CloseTicket(ctx context.Context, auth apiclient.Auth, id int) (*models.Ticket, error)
}

type adminService struct {
	adminRepo repositories.AdminRepository
	uploader  storage.FileUploader
	logger    *slog.Logger
}

// NewAdminService builds the backoffice service. uploader may be nil when
// receipt storage is not configured.
func NewAdminService(adminRepo repositories.AdminRepository, uploader storage.FileUploader, logger *slog.Logger) AdminService {
	return &adminService{
		adminRepo: adminRepo,
		uploader:  uploader,
		logger:    logger,
	}
}

func (s *adminService) ListAccounts(ctx context.Context, auth apiclient.Auth, filter repositories.AccountFilter) ([]models.Account, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	accounts, err := s.adminRepo.ListAccounts(ctx, auth, filter)
	if err != nil {
		return nil, handleAPIError(err)
	}
	return accounts, nil
}

func (s *adminService) CreateAccount(ctx context.Context, auth apiclient.Auth, input models.AccountInput) (*models.Account, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if input.Email == "" {
		return nil, validationError(ErrAccountEmailRequired)
	}
	if input.Name == "" {
		return nil, validationError(ErrAccountNameRequired)
	}
	if input.Password != "" && len(input.Password) < minPasswordLength {
		return nil, validationError(ErrPasswordTooShort)
	}

	account, err := s.adminRepo.CreateAccount(ctx, auth, input)
	if err != nil {
		return nil, handleAPIError(err)
	}
	s.logger.Info("account created", slog.Int("account_id", account.ID), slog.String("email", account.Email))
	return account, nil
}

func (s *adminService) UpdateAccount(ctx context.Context, auth apiclient.Auth, id int, input models.AccountUpdate) (*models.Account, error) {
	if input.Name != nil && blank(*input.Name) {
		return nil, validationError(ErrAccountNameRequired)
	}
	account, err := s.adminRepo.UpdateAccount(ctx, auth, id, input)
	if err != nil {
		return nil, handleAPIError(err)
	}
	return account, nil
}

func (s *adminService) ListPayments(ctx context.Context, auth apiclient.Auth, filter repositories.PaymentFilter) ([]models.Payment, error) {
	payments, err := s.adminRepo.ListPayments(ctx, auth, filter)
	if err != nil {
		return nil, handleAPIError(err)
	}
	return payments, nil
}

func (s *adminService) CreatePayment(ctx context.Context, auth apiclient.Auth, input models.PaymentInput, receiptKey string) (*models.Payment, error) {
	if input.AccountID <= 0 {
		return nil, validationError(ErrPaymentAccountRequired)
	}
	if input.Amount <= 0 {
		return nil, validationError(ErrPaymentInvalidAmount)
	}
	if !isValidDate(input.PaidAt) {
		return nil, validationError(ErrPaymentInvalidDate)
	}
	input.Currency = strings.ToUpper(strings.TrimSpace(input.Currency))

	if receiptKey != "" {
		if s.uploader == nil {
			return nil, storage.ErrStorageDisabled
		}
		if !storage.IsReceiptKey(input.AccountID, receiptKey) {
			return nil, validationError(ErrPaymentReceiptKey)
		}
		if input.ReceiptURL == nil {
			receiptURL := s.uploader.GetPublicURL(receiptKey)
			input.ReceiptURL = &receiptURL
		}
	}

	payment, err := s.adminRepo.CreatePayment(ctx, auth, input)
	if err != nil {
		if receiptKey != "" {
			s.discardReceipt(ctx, receiptKey)
		}
		return nil, handleAPIError(err)
	}
	s.logger.Info("payment registered",
		slog.Int("payment_id", payment.ID),
		slog.Int("account_id", payment.AccountID),
		slog.Float64("amount", payment.Amount),
	)
	return payment, nil
}

// discardReceipt removes an orphaned receipt even when the request was cancelled.
func (s *adminService) discardReceipt(ctx context.Context, key string) {
	if err := s.uploader.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Error("failed to delete orphaned receipt", slog.String("key", key), slog.Any("error", err))
		return
	}
	s.logger.Info("orphaned receipt deleted", slog.String("key", key))
}

func (s *adminService) UploadReceipt(ctx context.Context, accountID int, contentType string, body io.Reader) (*storage.UploadResult, error) {
	if accountID <= 0 {
		return nil, validationError(ErrPaymentAccountRequired)
	}
	res, err := storage.UploadReceipt(ctx, s.uploader, accountID, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("upload receipt for account %d: %w", accountID, err)
	}
	s.logger.Info("receipt uploaded", slog.Int("account_id", accountID), slog.String("key", res.Key))
	return res, nil
}

func (s *adminService) ListTickets(ctx context.Context, auth apiclient.Auth, filter repositories.TicketFilter) ([]models.Ticket, error) {
	tickets, err := s.adminRepo.ListTickets(ctx, auth, filter)
	if err != nil {
		return nil, handleAPIError(err)
	}
	return tickets, nil
}

func (s *adminService) GetTicket(ctx context.Context, auth apiclient.Auth, id int) (*models.Ticket, error) {
	ticket, err := s.adminRepo.GetTicket(ctx, auth, id)
	if err != nil {
		return nil, handleAPIError(err)
	}
	return ticket, nil
}

func (s *adminService) ReplyTicket(ctx context.Context, auth apiclient.Auth, id int, input models.TicketReplyInput) (*models.Ticket, error) {
	input.Body = strings.TrimSpace(input.Body)
	if input.Body == "" {
		return nil, validationError(ErrTicketReplyRequired)
	}
	ticket, err := s.GetTicket(ctx, auth, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status == models.TicketClosed {
		return nil, ErrTicketClosed
	}
	ticket, err = s.adminRepo.ReplyTicket(ctx, auth, id, input)
	if err != nil {
		return nil, handleAPIError(err)
	}
	return ticket, nil
}

func (s *adminService) CloseTicket(ctx context.Context, auth apiclient.Auth, id int) (*models.Ticket, error) {
	ticket, err := s.adminRepo.CloseTicket(ctx, auth, id)
	if err != nil {
		return nil, handleAPIError(err)
	}
	s.logger.Info("ticket closed", slog.Int("ticket_id", id))
	return ticket, nil
}
