package db

import (
	"context"

	"github.com/shaibs3/election-api/internal/db_model"
	"github.com/shaibs3/election-api/internal/storage"
)

const selectCandidates = `
	SELECT candidates.id, candidates.first_name, candidates.last_name,
		candidates.industry_connected, candidates.party_id, parties.name AS party_name
	FROM candidates
	LEFT JOIN parties ON candidates.party_id = parties.id`

// CandidateStore issues the candidate statements through a storage gateway
type CandidateStore struct {
	gateway storage.Gateway
}

func NewCandidateStore(gateway storage.Gateway) *CandidateStore {
	return &CandidateStore{gateway: gateway}
}

// List returns every candidate with its party name, in storage order
func (s *CandidateStore) List(ctx context.Context) ([]db_model.Candidate, error) {
	rows, err := s.gateway.QueryAll(ctx, selectCandidates)
	if err != nil {
		return nil, err
	}
	candidates := make([]db_model.Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, candidateFromRow(row))
	}
	return candidates, nil
}

// Get returns the candidate with the given id, or nil when it does not exist
func (s *CandidateStore) Get(ctx context.Context, id int64) (*db_model.Candidate, error) {
	row, err := s.gateway.QueryOne(ctx, selectCandidates+" WHERE candidates.id = ?", id)
	if err != nil || row == nil {
		return nil, err
	}
	candidate := candidateFromRow(row)
	return &candidate, nil
}

// Create inserts a candidate and returns its new id. partyID may be nil.
func (s *CandidateStore) Create(ctx context.Context, firstName, lastName, industryConnected, partyID interface{}) (int64, error) {
	res, err := s.gateway.Execute(ctx,
		`INSERT INTO candidates (first_name, last_name, industry_connected, party_id) VALUES (?, ?, ?, ?)`,
		firstName, lastName, industryConnected, partyID)
	if err != nil {
		return 0, err
	}
	return res.InsertedID, nil
}

// UpdateParty changes the party of a candidate and returns the number of rows changed
func (s *CandidateStore) UpdateParty(ctx context.Context, id int64, partyID interface{}) (int64, error) {
	res, err := s.gateway.Execute(ctx, `UPDATE candidates SET party_id = ? WHERE id = ?`, partyID, id)
	if err != nil {
		return 0, err
	}
	return res.AffectedCount, nil
}

// Delete removes a candidate and returns the number of rows changed
func (s *CandidateStore) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.gateway.Execute(ctx, `DELETE FROM candidates WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.AffectedCount, nil
}

// PartyStore issues the party statements through a storage gateway
type PartyStore struct {
	gateway storage.Gateway
}

func NewPartyStore(gateway storage.Gateway) *PartyStore {
	return &PartyStore{gateway: gateway}
}

// List returns every party in storage order
func (s *PartyStore) List(ctx context.Context) ([]db_model.Party, error) {
	rows, err := s.gateway.QueryAll(ctx, `SELECT id, name FROM parties`)
	if err != nil {
		return nil, err
	}
	parties := make([]db_model.Party, 0, len(rows))
	for _, row := range rows {
		parties = append(parties, partyFromRow(row))
	}
	return parties, nil
}

// Get returns the party with the given id, or nil when it does not exist
func (s *PartyStore) Get(ctx context.Context, id int64) (*db_model.Party, error) {
	row, err := s.gateway.QueryOne(ctx, `SELECT id, name FROM parties WHERE id = ?`, id)
	if err != nil || row == nil {
		return nil, err
	}
	party := partyFromRow(row)
	return &party, nil
}

// Delete removes a party and returns the number of rows changed.
// Candidates referencing the party keep their party_id.
func (s *PartyStore) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.gateway.Execute(ctx, `DELETE FROM parties WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.AffectedCount, nil
}

func candidateFromRow(row storage.Row) db_model.Candidate {
	id, _ := row.Int64("id")
	return db_model.Candidate{
		ID:                id,
		FirstName:         row.String("first_name"),
		LastName:          row.String("last_name"),
		IndustryConnected: row.Bool("industry_connected"),
		PartyID:           row.NullInt64("party_id"),
		PartyName:         row.NullString("party_name"),
	}
}

func partyFromRow(row storage.Row) db_model.Party {
	id, _ := row.Int64("id")
	return db_model.Party{
		ID:   id,
		Name: row.String("name"),
	}
}
