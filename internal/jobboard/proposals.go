package jobboard

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

// Proposals stores investment proposals as opaque documents.
type Proposals struct {
	repo repository.ProposalRepo
}

func NewProposals(repo repository.ProposalRepo) *Proposals {
	return &Proposals{repo: repo}
}

func (p *Proposals) Submit(ctx context.Context, userID string, data json.RawMessage) (*models.InvestmentProposal, error) {
	if len(data) == 0 {
		return nil, apperr.New(apperr.ErrInvalidInput, "proposal body is required")
	}
	prop := &models.InvestmentProposal{
		ID:      uuid.NewString(),
		UserID:  userID,
		Data:    data,
		Created: nowMillis(),
	}
	if err := p.repo.CreateProposal(ctx, prop); err != nil {
		return nil, apperr.Internal("create proposal", err)
	}
	return prop, nil
}

func (p *Proposals) List(ctx context.Context) ([]models.InvestmentProposal, error) {
	out, err := p.repo.ListProposals(ctx)
	if err != nil {
		return nil, apperr.Internal("list proposals", err)
	}
	if out == nil {
		out = []models.InvestmentProposal{}
	}
	return out, nil
}
