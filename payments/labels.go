package payments

import (
	"fmt"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
)

// ParticipantLabel is the single display form of a party. The ledger view
// and every export go through it so they always agree.
func ParticipantLabel(p models.Party) string {
	if p.PartyName != "" {
		if !p.PartyID.IsZero() {
			return fmt.Sprintf("%s (%s #%s)", p.PartyName, p.PartyType, p.PartyID)
		}
		return fmt.Sprintf("%s (%s)", p.PartyName, p.PartyType)
	}

	typ := string(p.PartyType)
	if typ == "" {
		typ = "participant"
	}
	if !p.PartyID.IsZero() {
		return fmt.Sprintf("%s #%s", typ, p.PartyID)
	}
	return typ
}

// LabelParticipant labels a pool member the same way as a party.
func LabelParticipant(p models.Participant) string {
	return ParticipantLabel(models.Party{PartyType: p.Type, PartyID: p.ID, PartyName: p.Name})
}
