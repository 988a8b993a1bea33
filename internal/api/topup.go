package api

import (
	"errors"   // Error matching
	"net/http" // Upload limits and errors
	"strings"  // Input trimming

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/utils"
	"storefront/internal/view"
)

// TopUpHandler files a top-up request with an inline receipt image.
// A failure keeps the typed amount for the retry.
func TopUpHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		s := middleware.CurrentSession(c)

		// Cap what is read before the multipart body is parsed or spilled to disk
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uploadLimit(env.MaxReceiptBytes))
		if _, err := c.MultipartForm(); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				fail(c, env, s, view.Invalid(utils.ErrReceiptTooLarge.Error()))
				return
			}
		}

		draft := domain.Draft{"amount": strings.TrimSpace(c.PostForm("amount"))}
		s.KeepDraft(formTopUp, draft)

		amount, err := view.ParseAmount(draft["amount"])
		if err != nil {
			fail(c, env, s, err)
			return
		}
		receipt, err := readReceipt(c, env.MaxReceiptBytes)
		if err != nil {
			fail(c, env, s, err)
			return
		}

		res, err := env.Backend.SubmitTopUp(ctx, s, domain.NewTopUp{Amount: amount, ReceiptData: receipt})
		if err != nil {
			fail(c, env, s, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    s.User.ID,
			"request_id": res.RequestID,
			"amount":     amount,
		}).Info("Top-up requested")

		s.ClearDraft(formTopUp)
		invalidate(ctx, env, userTopUpsKey(s.User.ID), adminTopUpsKey)
		s.Notify(domain.NoticeSuccess, "Top-up request submitted successfully")
		finish(c, env, s)
	}
}

// uploadLimit is the largest top-up body accepted: the receipt plus room for form fields
func uploadLimit(maxReceipt int64) int64 {
	return maxReceipt + 1<<20
}

// readReceipt encodes the uploaded receipt field as a data URL
func readReceipt(c *gin.Context, maxBytes int64) (string, error) {
	fh, err := c.FormFile("receipt")
	if errors.Is(err, http.ErrMissingFile) {
		return "", view.Invalid(utils.ErrEmptyReceipt.Error())
	} else if err != nil {
		return "", view.Invalid("Could not read the uploaded receipt")
	}
	if fh.Size > maxBytes {
		return "", view.Invalid(utils.ErrReceiptTooLarge.Error())
	}
	f, err := fh.Open()
	if err != nil {
		return "", view.Invalid("Could not read the uploaded receipt")
	}
	defer f.Close()

	data, err := utils.EncodeReceipt(f, maxBytes)
	switch {
	case errors.Is(err, utils.ErrEmptyReceipt), errors.Is(err, utils.ErrNotImage), errors.Is(err, utils.ErrReceiptTooLarge):
		return "", view.Invalid(err.Error())
	case err != nil:
		return "", err
	}
	return data, nil
}
