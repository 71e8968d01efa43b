package models

// Owner is a land owner attached to a deal.
type Owner struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Mobile  string `json:"mobile,omitempty"`
	Email   string `json:"email,omitempty"`
	Aadhar  string `json:"aadhar_card,omitempty"`
	PAN     string `json:"pan_card,omitempty"`
	Address string `json:"address,omitempty"`
}

// Investor is an investor attached to a deal.
type Investor struct {
	ID                ID     `json:"id"`
	InvestorName      string `json:"investor_name"`
	InvestmentAmount  string `json:"investment_amount,omitempty"`
	InvestmentPercent string `json:"investment_percentage,omitempty"`
	Mobile            string `json:"mobile,omitempty"`
	Email             string `json:"email,omitempty"`
	Address           string `json:"address,omitempty"`
}

// Buyer is a buyer attached to a deal.
type Buyer struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Expense is a cost recorded against a deal.
type Expense struct {
	ID          ID     `json:"id,omitempty"`
	ExpenseType string `json:"expense_type"`
	Amount      string `json:"amount"`
	PaidBy      string `json:"paid_by,omitempty"`
	ExpenseDate string `json:"expense_date,omitempty"`
	Description string `json:"expense_description,omitempty"`
}

// Document is an uploaded file attached to a deal or owner.
type Document struct {
	ID           ID     `json:"id"`
	DocumentType string `json:"document_type"`
	DocumentName string `json:"document_name"`
	FilePath     string `json:"file_path"`
	FileSize     int64  `json:"file_size,omitempty"`
}

// Deal aggregates the participants and expenses of a land deal.
type Deal struct {
	ID           ID         `json:"id"`
	ProjectName  string     `json:"project_name"`
	SurveyNumber string     `json:"survey_number,omitempty"`
	State        string     `json:"state,omitempty"`
	District     string     `json:"district,omitempty"`
	Taluka       string     `json:"taluka,omitempty"`
	Village      string     `json:"village,omitempty"`
	TotalArea    string     `json:"total_area,omitempty"`
	AreaUnit     string     `json:"area_unit,omitempty"`
	PurchaseDate string     `json:"purchase_date,omitempty"`
	Status       string     `json:"status,omitempty"`
	Owners       []Owner    `json:"owners,omitempty"`
	Investors    []Investor `json:"investors,omitempty"`
	Buyers       []Buyer    `json:"buyers,omitempty"`
	Expenses     []Expense  `json:"expenses,omitempty"`
	Documents    []Document `json:"documents,omitempty"`
}

// DealInput is the create/update body for a deal. Documents lists the
// names of files that will be uploaded after creation.
type DealInput struct {
	ProjectName  string     `json:"project_name"`
	SurveyNumber string     `json:"survey_number,omitempty"`
	State        string     `json:"state,omitempty"`
	District     string     `json:"district,omitempty"`
	Taluka       string     `json:"taluka,omitempty"`
	Village      string     `json:"village,omitempty"`
	TotalArea    string     `json:"total_area,omitempty"`
	AreaUnit     string     `json:"area_unit,omitempty"`
	PurchaseDate string     `json:"purchase_date,omitempty"`
	Status       string     `json:"status,omitempty"`
	Owners       []Owner    `json:"owners,omitempty"`
	Investors    []Investor `json:"investors,omitempty"`
	Documents    []string   `json:"documents,omitempty"`
}

// CreateDealResponse is returned by POST /deals. Older backends return id
// instead of deal_id.
type CreateDealResponse struct {
	DealID  ID     `json:"deal_id"`
	ID      ID     `json:"id"`
	Message string `json:"message,omitempty"`
}

// Identifier returns whichever id field the backend populated.
func (r CreateDealResponse) Identifier() ID {
	if !r.DealID.IsZero() {
		return r.DealID
	}
	return r.ID
}

// MessageResponse is the generic {message} body of mutating endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
