package redemption

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/internal/metrics"
)

func (s *Service) proofsEnabled() bool {
	return s.renderer != nil && s.store != nil
}

// generateProofAsync renders and stores the proof outside the request. The
// redemption is already committed, so a failure is only counted and logged.
func (s *Service) generateProofAsync(ctx context.Context, rr domain.RedemptionRequest, employee domain.User) {
	if !s.proofsEnabled() {
		return
	}

	s.proofs.Add(1)
	go func() {
		defer s.proofs.Done()

		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.proofTimeout)
		defer cancel()

		if _, err := s.generateProof(pctx, rr, employee); err != nil {
			metrics.SideEffectFailures.WithLabelValues("proof").Inc()
			s.log.ErrorContext(pctx, "generate proof",
				slog.String("redemption_id", rr.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}()
}

func (s *Service) generateProof(ctx context.Context, rr domain.RedemptionRequest, employee domain.User) (string, error) {
	data, err := s.renderer.RenderTimelineProof(domain.ProofDocument{
		Redemption: rr,
		Employee:   employee,
		IssuedAt:   s.now(),
	})
	if err != nil {
		return "", fmt.Errorf("render proof: %w", err)
	}

	ref, err := s.store.StoreDocument(ctx, data, "redemption-"+rr.ID.String()+".pdf", map[string]string{
		"redemption_id": rr.ID.String(),
		"user_id":       rr.UserID.String(),
	})
	if err != nil {
		return "", fmt.Errorf("store proof: %w", err)
	}

	if err := s.redemptions.SetProofRef(ctx, rr.ID, ref); err != nil {
		return "", fmt.Errorf("set proof ref: %w", err)
	}

	s.log.InfoContext(ctx, "proof stored",
		slog.String("redemption_id", rr.ID.String()),
		slog.String("ref", ref),
	)
	return ref, nil
}

// RegenerateProof renders the proof again from the current timeline and
// returns the new document reference.
func (s *Service) RegenerateProof(ctx context.Context, id uuid.UUID) (string, error) {
	if _, err := s.payoutCaller(ctx); err != nil {
		return "", err
	}
	if !s.proofsEnabled() {
		return "", domain.NewValidationError("proof", "proof documents are not enabled")
	}

	rr, err := s.redemptions.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get redemption: %w", err)
	}
	employee, err := s.users.GetByID(ctx, rr.UserID)
	if err != nil {
		return "", fmt.Errorf("get employee: %w", err)
	}
	return s.generateProof(ctx, *rr, *employee)
}
