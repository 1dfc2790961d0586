package sqlite

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/garnizeh/jobboard/pkg/models"
)

func (r *SQLiteRepo) CreateProposal(ctx context.Context, p *models.InvestmentProposal) error {
	if p == nil {
		return fmt.Errorf("proposal is nil")
	}

	q := squirrel.Insert("investment_proposals").
		Columns("id", "user_id", "data", "created").
		Values(p.ID, p.UserID, jsonText(p.Data), p.Created)
	_, err := r.exec(ctx, q)
	return err
}

func (r *SQLiteRepo) ListProposals(ctx context.Context) ([]models.InvestmentProposal, error) {
	q := squirrel.Select("id", "user_id", "data", "created").
		From("investment_proposals").
		OrderBy("rowid")
	rows, err := r.query(ctx, q)
	if err != nil {
		return nil, err
	}
	return scanAll(rows, func(s rowScanner) (models.InvestmentProposal, error) {
		var p models.InvestmentProposal
		var data string
		if err := s.Scan(&p.ID, &p.UserID, &data, &p.Created); err != nil {
			return p, err
		}
		p.Data = []byte(data)
		return p, nil
	})
}
