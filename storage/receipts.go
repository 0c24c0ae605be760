package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// MaxReceiptSize bounds payment receipt uploads.
const MaxReceiptSize = 5 << 20

var (
	ErrReceiptType     = errors.New("receipt must be a PDF, PNG or JPEG file")
	ErrStorageDisabled = errors.New("file storage is not configured")
)

var receiptExtensions = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
}

// ReceiptKey builds the object key of a payment receipt.
func ReceiptKey(accountID int, contentType string, now time.Time) (string, error) {
	ext, ok := receiptExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", ErrReceiptType
	}
	return path.Join("receipts", fmt.Sprintf("account-%d", accountID), fmt.Sprintf("%d%s", now.UnixNano(), ext)), nil
}

// IsReceiptKey reports whether key names a receipt stored for the account.
func IsReceiptKey(accountID int, key string) bool {
	prefix := fmt.Sprintf("receipts/account-%d/", accountID)
	if !strings.HasPrefix(key, prefix) || path.Clean(key) != key {
		return false
	}
	name := strings.TrimPrefix(key, prefix)
	if strings.Contains(name, "/") {
		return false
	}
	for _, ext := range receiptExtensions {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return true
		}
	}
	return false
}

// UploadReceipt stores a receipt file and returns its public URL. A nil uploader
// means storage is disabled.
func UploadReceipt(ctx context.Context, uploader FileUploader, accountID int, contentType string, body io.Reader) (*UploadResult, error) {
	if uploader == nil {
		return nil, ErrStorageDisabled
	}
	key, err := ReceiptKey(accountID, contentType, time.Now())
	if err != nil {
		return nil, err
	}
	return uploader.Upload(ctx, key, contentType, io.LimitReader(body, MaxReceiptSize))
}
