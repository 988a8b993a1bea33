package utils

import (
	"encoding/base64" // Inline encoding
	"errors"          // Sentinel errors
	"fmt"             // Error formatting
	"io"              // Upload reading
	"strings"         // MIME prefix check

	"github.com/gabriel-vasile/mimetype" // Content sniffing
)

var (
	// ErrEmptyReceipt means no file content was uploaded
	ErrEmptyReceipt = errors.New("please select a receipt image")
	// ErrNotImage means the upload is not a recognised image format
	ErrNotImage = errors.New("receipt must be an image")
	// ErrReceiptTooLarge means the upload exceeds the configured limit
	ErrReceiptTooLarge = errors.New("receipt image is too large")
)

// EncodeReceipt reads an uploaded receipt and returns it as a data URL
// (data:<mime>;base64,<payload>), the inline form the backend stores.
func EncodeReceipt(r io.Reader, maxBytes int64) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read receipt: %w", err)
	}
	if len(b) == 0 {
		return "", ErrEmptyReceipt
	}
	if int64(len(b)) > maxBytes {
		return "", ErrReceiptTooLarge
	}
	mt := mimetype.Detect(b)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", ErrNotImage
	}
	return "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}
