package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/elevenlabs-stt/errors"
	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/observability"
	"github.com/kbukum/elevenlabs-stt/server"
)

// HandlerFunc processes a verified event. A returned error answers the
// delivery with an error status so that the sender retries it.
type HandlerFunc func(ctx context.Context, ev *Event) error

// Chain runs fns in order and stops at the first error.
func Chain(fns ...HandlerFunc) HandlerFunc {
	return func(ctx context.Context, ev *Event) error {
		for _, fn := range fns {
			if err := fn(ctx, ev); err != nil {
				return err
			}
		}
		return nil
	}
}

// Handler returns a gin handler that verifies, decodes and dispatches
// deliveries. Failures are rendered as the standard error envelope: 401 for
// signature problems, 400 for undecodable bodies, 413 for oversized ones.
func Handler(cfg Config, fn HandlerFunc, opts ...Option) gin.HandlerFunc {
	return newHandler(cfg, fn, newOptions(opts))
}

func newHandler(cfg Config, fn HandlerFunc, o options) gin.HandlerFunc {
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}
	log, now, dedup := o.log, o.now, o.dedup

	return func(c *gin.Context) {
		ctx, span := observability.StartSpan(c.Request.Context(), observability.SpanWebhookReceive)
		defer span.End()
		log := log.WithContext(ctx)

		fail := func(appErr *apperrors.AppError) {
			observability.SetSpanError(ctx, appErr)
			log.Warn("webhook rejected", logger.Fields(
				"code", string(appErr.Code),
				logger.FieldError, appErr.Error(),
			))
			server.RespondWithError(c, appErr)
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				fail(apperrors.New(apperrors.ErrCodeInvalidInput, "Payload too large.", http.StatusRequestEntityTooLarge))
				return
			}
			fail(apperrors.InvalidFormat("webhook body", err))
			return
		}

		if err := VerifySignature(cfg.Secret, c.GetHeader(SignatureHeader), body, now(), cfg.Tolerance); err != nil {
			fail(apperrors.InvalidSignature(err.Error()).WithCause(err))
			return
		}

		var ev Event
		if err := json.Unmarshal(body, &ev); err != nil {
			fail(apperrors.InvalidFormat("webhook event", err))
			return
		}
		observability.SetSpanAttribute(ctx, observability.AttrRequestID, ev.Data.RequestID)
		observability.SetSpanAttribute(ctx, "webhook.event_type", ev.Type)

		if dedup != nil && ev.Data.RequestID != "" {
			fresh, err := dedup.Claim(ctx, ev.Data.RequestID)
			if err != nil {
				fail(apperrors.Internal(err))
				return
			}
			if !fresh {
				log.Info("duplicate webhook skipped", logger.Fields("transcription_request_id", ev.Data.RequestID))
				c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
				return
			}
		}

		if err := fn(ctx, &ev); err != nil {
			if dedup != nil && ev.Data.RequestID != "" {
				if rerr := dedup.Release(ctx, ev.Data.RequestID); rerr != nil {
					log.Warn("failed to release webhook claim", logger.Fields(logger.FieldError, rerr.Error()))
				}
			}
			appErr := apperrors.From(err)
			observability.SetSpanError(ctx, err)
			log.Error("webhook handler failed", logger.Fields(
				logger.FieldRequestID, ev.Data.RequestID,
				logger.FieldError, err.Error(),
			))
			server.RespondWithError(c, appErr)
			return
		}

		log.Info("webhook received", logger.Fields(
			"type", ev.Type,
			"transcription_request_id", ev.Data.RequestID,
		))
		c.JSON(http.StatusOK, gin.H{"status": "received"})
	}
}
