package payments

import (
	"errors"
	"strings"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
)

// ErrNoParticipants is returned when an import is attempted on a deal with
// no owners, investors or buyers.
var ErrNoParticipants = errors.New("No participants to import")

// AllocationStrategy turns a participant pool into editable party rows.
type AllocationStrategy interface {
	Allocate(pool []models.Participant) []models.Party
}

// AllocationFunc adapts a plain function to AllocationStrategy.
type AllocationFunc func(pool []models.Participant) []models.Party

func (f AllocationFunc) Allocate(pool []models.Participant) []models.Party { return f(pool) }

// FirstPayerStrategy makes the first participant the payer and everyone else
// a payee. Targets and amounts are left for the user to fill in.
type FirstPayerStrategy struct{}

func (FirstPayerStrategy) Allocate(pool []models.Participant) []models.Party {
	parties := make([]models.Party, 0, len(pool))
	for i, p := range pool {
		role := models.RolePayee
		if i == 0 {
			role = models.RolePayer
		}
		parties = append(parties, models.Party{
			PartyType: p.Type,
			PartyID:   p.ID,
			PartyName: p.Name,
			Role:      role,
		})
	}
	return parties
}

// Strategy names accepted by StrategyByName.
const (
	StrategyFirstPayer = "first_payer"
	StrategySplitEqual = "split_equal"
)

// DefaultStrategy is used when no strategy is named.
var DefaultStrategy AllocationStrategy = FirstPayerStrategy{}

var strategies = map[string]AllocationStrategy{
	StrategyFirstPayer: FirstPayerStrategy{},
	// Amounts are overwritten with the payment total on submit, so an equal
	// split allocates the same rows as first_payer.
	StrategySplitEqual: FirstPayerStrategy{},
}

// StrategyByName resolves a registered strategy, falling back to
// DefaultStrategy for unknown or empty names.
func StrategyByName(name string) AllocationStrategy {
	if s, ok := strategies[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s
	}
	return DefaultStrategy
}

// RegisterStrategy adds or replaces a named strategy. It is not safe to call
// concurrently with StrategyByName and is meant for process start-up.
func RegisterStrategy(name string, s AllocationStrategy) {
	strategies[strings.ToLower(strings.TrimSpace(name))] = s
}

// BuildParticipantPool lists a deal's owners, investors and buyers, in that
// order, as selectable participants.
func BuildParticipantPool(deal *models.Deal) []models.Participant {
	if deal == nil {
		return nil
	}
	pool := make([]models.Participant, 0, len(deal.Owners)+len(deal.Investors)+len(deal.Buyers))
	for _, o := range deal.Owners {
		pool = append(pool, models.Participant{Type: models.PartyTypeOwner, ID: o.ID, Name: o.Name, Role: string(models.PartyTypeOwner)})
	}
	for _, i := range deal.Investors {
		pool = append(pool, models.Participant{Type: models.PartyTypeInvestor, ID: i.ID, Name: i.InvestorName, Role: string(models.PartyTypeInvestor)})
	}
	for _, b := range deal.Buyers {
		pool = append(pool, models.Participant{Type: models.PartyTypeBuyer, ID: b.ID, Name: b.Name, Role: string(models.PartyTypeBuyer)})
	}
	return pool
}

// ImportParticipants allocates the pool with strategy. A nil strategy uses
// DefaultStrategy.
func ImportParticipants(pool []models.Participant, strategy AllocationStrategy) ([]models.Party, error) {
	if len(pool) == 0 {
		return []models.Party{}, ErrNoParticipants
	}
	if strategy == nil {
		strategy = DefaultStrategy
	}
	return strategy.Allocate(pool), nil
}
