package payments

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
)

var (
	// ErrSelfPayment is returned when a party is pointed at itself.
	ErrSelfPayment = errors.New("A party cannot pay itself")
	// ErrPartyIndex is returned for an out of range row index.
	ErrPartyIndex = errors.New("party index out of range")
)

// PartyBuilder holds the editable party rows of a payment form.
type PartyBuilder struct {
	rows []models.Party
}

// NewPartyBuilder starts with a single blank owner row.
func NewPartyBuilder() *PartyBuilder {
	return &PartyBuilder{rows: []models.Party{blankParty()}}
}

func blankParty() models.Party {
	return models.Party{PartyType: models.PartyTypeOwner}
}

// Rows returns a copy of the current rows.
func (b *PartyBuilder) Rows() []models.Party {
	out := make([]models.Party, len(b.rows))
	copy(out, b.rows)
	return out
}

// Len returns the number of rows.
func (b *PartyBuilder) Len() int { return len(b.rows) }

// Add appends a blank owner row and returns its index.
func (b *PartyBuilder) Add() int {
	b.rows = append(b.rows, blankParty())
	return len(b.rows) - 1
}

// AddManual appends an "other" row identified only by free text. Names are
// kept as typed and never deduplicated.
func (b *PartyBuilder) AddManual(name string) int {
	b.rows = append(b.rows, models.Party{PartyType: models.PartyTypeOther, PartyName: name})
	return len(b.rows) - 1
}

// Remove deletes row i.
func (b *PartyBuilder) Remove(i int) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.rows = append(b.rows[:i], b.rows[i+1:]...)
	return nil
}

// Import replaces all rows with the strategy's allocation of pool. On an
// empty pool the rows are left untouched.
func (b *PartyBuilder) Import(pool []models.Participant, strategy AllocationStrategy) error {
	rows, err := ImportParticipants(pool, strategy)
	if err != nil {
		return err
	}
	b.rows = rows
	return nil
}

// SetParty selects who row i is. Changing the party clears its target.
func (b *PartyBuilder) SetParty(i int, partyType models.PartyType, id models.ID, name string) error {
	if err := b.check(i); err != nil {
		return err
	}
	r := &b.rows[i]
	r.PartyType, r.PartyID, r.PartyName = partyType, id, name
	r.PayToType, r.PayToID, r.PayToName = "", "", ""
	return nil
}

// SetRole sets row i to payer or payee.
func (b *PartyBuilder) SetRole(i int, role string) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.rows[i].Role = role
	return nil
}

// SetTarget points row i at its counterpart. A target equal to the row's
// own participant is rejected with ErrSelfPayment and nothing changes.
func (b *PartyBuilder) SetTarget(i int, targetType models.PartyType, id models.ID, name string) error {
	if err := b.check(i); err != nil {
		return err
	}
	candidate := b.rows[i]
	candidate.PayToType, candidate.PayToID, candidate.PayToName = targetType, id, name
	if IsSelfTarget(candidate) {
		return ErrSelfPayment
	}
	b.rows[i] = candidate
	return nil
}

// TargetOptions lists the pool members of targetType that row i may pay or
// receive from. The row's own participant is excluded.
func (b *PartyBuilder) TargetOptions(pool []models.Participant, i int, targetType models.PartyType) ([]models.Participant, error) {
	if err := b.check(i); err != nil {
		return nil, err
	}
	self := b.rows[i]
	out := make([]models.Participant, 0, len(pool))
	for _, p := range pool {
		if p.Type != targetType {
			continue
		}
		if p.Type == self.PartyType && !self.PartyID.IsZero() && p.ID == self.PartyID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (b *PartyBuilder) check(i int) error {
	if i < 0 || i >= len(b.rows) {
		return fmt.Errorf("%w: %d", ErrPartyIndex, i)
	}
	return nil
}

// IsSelfTarget reports whether p's target is p itself. Known participants
// compare by type and id; "other" participants compare by name. A target id
// without a type is taken to be of the party's own type.
func IsSelfTarget(p models.Party) bool {
	targetType := p.PayToType
	if targetType == "" {
		targetType = models.PartyTypeOther
		if !p.PayToID.IsZero() {
			targetType = p.PartyType
		}
	}
	if targetType != p.PartyType {
		return false
	}
	if !p.PartyID.IsZero() || !p.PayToID.IsZero() {
		return p.PartyID == p.PayToID
	}
	self := strings.TrimSpace(p.PartyName)
	return self != "" && strings.EqualFold(self, strings.TrimSpace(p.PayToName))
}
