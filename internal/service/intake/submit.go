package intake

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/formsink/formsink/internal/domain"
)

// Submit accepts one form post. A configured verifier gates the pipeline:
// rejection or provider failure both block the submission. A failing rate
// limiter does not: limiting is best-effort abuse mitigation, so backend
// errors fail open. Store errors propagate as the repos produced them. The
// notification runs detached; Submit never waits on it.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (domain.Submission, error) {
	if err := input.Validate(); err != nil {
		return domain.Submission{}, err
	}

	var spamScore *float64
	if s.verifier != nil {
		verdict, err := s.verifier.Verify(ctx, input.Token, input.ClientIP)
		if err != nil {
			s.log.ErrorContext(ctx, "verification unavailable",
				slog.String("form_id", input.FormID),
				slog.String("error", err.Error()),
			)
			return domain.Submission{}, fmt.Errorf("verify submission: %w", domain.ErrVerificationFailed)
		}
		if !verdict.Accepted {
			return domain.Submission{}, &domain.VerificationError{Codes: verdict.Codes}
		}
		spamScore = verdict.Score
	}

	decision, err := s.limiter.Check(ctx, input.ClientIP, s.limits.MaxRequests, s.limits.WindowSeconds())
	if err != nil {
		s.log.ErrorContext(ctx, "rate limit check failed, allowing request",
			slog.String("form_id", input.FormID),
			slog.String("error", err.Error()),
		)
	} else if !decision.Allowed {
		return domain.Submission{}, &domain.RateLimitError{RetryAfterSeconds: decision.RetryAfterSeconds}
	}

	stored, err := s.store.Store(ctx, domain.Submission{
		FormID: input.FormID,
		Data:   input.Data,
		Metadata: domain.Metadata{
			IP:        input.ClientIP,
			UserAgent: input.UserAgent,
			Timestamp: domain.NowTimestamp(),
			SpamScore: spamScore,
		},
	})
	if err != nil {
		return domain.Submission{}, err
	}

	s.log.InfoContext(ctx, "submission accepted",
		slog.String("form_id", stored.FormID),
		slog.String("submission_id", stored.ID),
	)

	if s.notifier != nil {
		s.notifyDetached(ctx, stored)
	}

	return stored, nil
}

// notifyDetached sends the notification on its own goroutine with its own
// deadline. The parent's cancelation is stripped so the send outlives the
// request that triggered it; failures are logged, never returned.
func (s *Service) notifyDetached(ctx context.Context, sub domain.Submission) {
	detached := context.WithoutCancel(ctx)

	go func() {
		nctx, cancel := context.WithTimeout(detached, notifyTimeout)
		defer cancel()

		if err := s.notifier.Notify(nctx, sub); err != nil {
			s.log.ErrorContext(nctx, "notification failed",
				slog.String("submission_id", sub.ID),
				slog.String("form_id", sub.FormID),
				slog.String("error", err.Error()),
			)
		}
	}()
}
