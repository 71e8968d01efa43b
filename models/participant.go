package models

// PartyType tags which kind of deal participant a party refers to.
type PartyType string

const (
	PartyTypeOwner    PartyType = "owner"
	PartyTypeInvestor PartyType = "investor"
	PartyTypeBuyer    PartyType = "buyer"
	PartyTypeOther    PartyType = "other"
)

// Valid reports whether t is one of the known participant kinds.
func (t PartyType) Valid() bool {
	switch t {
	case PartyTypeOwner, PartyTypeInvestor, PartyTypeBuyer, PartyTypeOther:
		return true
	}
	return false
}

// Participant is a selectable person attached to a deal. Participants of
// type "other" have no ID, only a free-text name.
type Participant struct {
	Type PartyType `json:"party_type"`
	ID   ID        `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role,omitempty"`
}

// Party roles.
const (
	RolePayer = "payer"
	RolePayee = "payee"
)
