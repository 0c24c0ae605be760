package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/repositories"
	"github.com/padelhub/padel-web/services"
	"github.com/padelhub/padel-web/session"
	"github.com/padelhub/padel-web/storage"
)

type AdminHandler struct {
	adminService services.AdminService
	sessions     *session.Manager
}

func NewAdminHandler(adminService services.AdminService, sessions *session.Manager) *AdminHandler {
	return &AdminHandler{adminService: adminService, sessions: sessions}
}

// ListAccounts godoc
// @Summary List customer accounts
// @Tags admin
// @Produce json
// @Param search query string false "Email or name fragment"
// @Success 200 {object} map[string]interface{} "accounts"
// @Failure 403 {object} map[string]bool "restricted"
// @Security SessionCookie
// @Router /admin/accounts [get]
func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	filter := repositories.AccountFilter{Search: r.URL.Query().Get("search")}
	accounts, err := h.adminService.ListAccounts(r.Context(), authFrom(r), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"accounts": accounts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateAccount godoc
// @Summary Create a customer account
// @Tags admin
// @Accept json
// @Produce json
// @Param body body models.AccountInput true "Account"
// @Success 201 {object} map[string]interface{} "account"
// @Failure 422 {object} map[string]string
// @Security SessionCookie
// @Router /admin/accounts [post]
func (h *AdminHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var input models.AccountInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	account, err := h.adminService.CreateAccount(r.Context(), authFrom(r), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"account": account}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateAccount godoc
// @Summary Update a customer account
// @Tags admin
// @Accept json
// @Produce json
// @Param accountID path int true "Account ID"
// @Param body body models.AccountUpdate true "Changed fields"
// @Success 200 {object} map[string]interface{} "account"
// @Security SessionCookie
// @Router /admin/accounts/{accountID} [patch]
func (h *AdminHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "accountID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.AccountUpdate
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	account, err := h.adminService.UpdateAccount(r.Context(), authFrom(r), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"account": account}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListPayments godoc
// @Summary List manual payments
// @Tags admin
// @Produce json
// @Param account_id query int false "Account ID"
// @Success 200 {object} map[string]interface{} "payments"
// @Security SessionCookie
// @Router /admin/payments [get]
func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	var filter repositories.PaymentFilter
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			badRequestResponse(w, r, errors.New("invalid account_id query parameter"))
			return
		}
		filter.AccountID = &id
	}
	payments, err := h.adminService.ListPayments(r.Context(), authFrom(r), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"payments": payments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// paymentRequest is a payment plus the key of a receipt uploaded through
// UploadReceipt, if any.
type paymentRequest struct {
	models.PaymentInput
	ReceiptKey string `json:"receipt_key,omitempty"`
}

// CreatePayment godoc
// @Summary Register a manual payment
// @Tags admin
// @Accept json
// @Produce json
// @Param body body handlers.paymentRequest true "Payment with optional receipt_key"
// @Success 201 {object} map[string]interface{} "payment"
// @Failure 422 {object} map[string]string
// @Security SessionCookie
// @Router /admin/payments [post]
func (h *AdminHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var input paymentRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	payment, err := h.adminService.CreatePayment(r.Context(), authFrom(r), input.PaymentInput, input.ReceiptKey)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"payment": payment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadReceipt godoc
// @Summary Upload a payment receipt
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param account_id formData int true "Account ID"
// @Param receipt formData file true "PDF, PNG or JPEG"
// @Success 201 {object} map[string]interface{} "receipt_url"
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string "Storage not configured"
// @Security SessionCookie
// @Router /admin/payments/receipts [post]
func (h *AdminHandler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxReceiptSize+1<<20)
	if err := r.ParseMultipartForm(storage.MaxReceiptSize); err != nil {
		badRequestResponse(w, r, errors.New("invalid multipart form or file too large"))
		return
	}
	accountID, err := strconv.Atoi(r.FormValue("account_id"))
	if err != nil {
		badRequestResponse(w, r, errors.New("invalid account_id"))
		return
	}
	file, header, err := r.FormFile("receipt")
	if err != nil {
		badRequestResponse(w, r, errors.New("receipt file is required"))
		return
	}
	defer file.Close()

	if header.Size > storage.MaxReceiptSize {
		badRequestResponse(w, r, errors.New("receipt file is too large"))
		return
	}

	res, err := h.adminService.UploadReceipt(r.Context(), accountID, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"receipt_url": res.Location, "key": res.Key}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListTickets godoc
// @Summary List support tickets
// @Tags admin
// @Produce json
// @Param status query string false "open or closed"
// @Success 200 {object} map[string]interface{} "tickets"
// @Security SessionCookie
// @Router /admin/tickets [get]
func (h *AdminHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	var filter repositories.TicketFilter
	switch status := models.TicketStatus(r.URL.Query().Get("status")); status {
	case "":
	case models.TicketOpen, models.TicketClosed:
		filter.Status = &status
	default:
		badRequestResponse(w, r, errors.New("invalid status query parameter"))
		return
	}
	tickets, err := h.adminService.ListTickets(r.Context(), authFrom(r), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tickets": tickets}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTicket godoc
// @Summary Get a support ticket with its replies
// @Tags admin
// @Produce json
// @Param ticketID path int true "Ticket ID"
// @Success 200 {object} map[string]interface{} "ticket"
// @Security SessionCookie
// @Router /admin/tickets/{ticketID} [get]
func (h *AdminHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "ticketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	ticket, err := h.adminService.GetTicket(r.Context(), authFrom(r), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"ticket": ticket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReplyTicket godoc
// @Summary Reply to a support ticket
// @Tags admin
// @Accept json
// @Produce json
// @Param ticketID path int true "Ticket ID"
// @Param body body models.TicketReplyInput true "Reply"
// @Success 201 {object} map[string]interface{} "ticket"
// @Failure 409 {object} map[string]string "Ticket closed"
// @Security SessionCookie
// @Router /admin/tickets/{ticketID}/replies [post]
func (h *AdminHandler) ReplyTicket(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "ticketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.TicketReplyInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	ticket, err := h.adminService.ReplyTicket(r.Context(), authFrom(r), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"ticket": ticket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CloseTicket godoc
// @Summary Close a support ticket
// @Tags admin
// @Produce json
// @Param ticketID path int true "Ticket ID"
// @Success 200 {object} map[string]interface{} "ticket"
// @Security SessionCookie
// @Router /admin/tickets/{ticketID}/close [post]
func (h *AdminHandler) CloseTicket(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "ticketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	ticket, err := h.adminService.CloseTicket(r.Context(), authFrom(r), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"ticket": ticket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
