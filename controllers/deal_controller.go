package controllers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/uploads"
	"github.com/gin-gonic/gin"
)

// Multipart layout of POST /bff/deals. The deal itself is JSON in the
// "deal" field; files are grouped by field name:
//
//	general              general documents
//	land.<type>          land documents of one type
//	additional.<name>    a user-named land document group
//	owner.<i>.<type>     documents of the i-th owner (zero-based)
const (
	fieldDeal        = "deal"
	fieldGeneral     = "general"
	prefixLand       = "land."
	prefixAdditional = "additional."
	prefixOwner      = "owner."
)

// DealController handles deals, their expenses and the participant lookups
// the payment form uses.
type DealController struct {
	deals services.DealService
}

func NewDealController(svc services.DealService) *DealController {
	return &DealController{deals: svc}
}

// Create handles POST /bff/deals
func (dc *DealController) Create(ctx *gin.Context) {
	if err := ctx.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	var in models.DealInput
	if err := json.Unmarshal([]byte(ctx.PostForm(fieldDeal)), &in); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	docs, err := dealDocuments(ctx.Request.MultipartForm)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, svcErr := dc.deals.CreateWithDocuments(ctx.Request.Context(), &in, docs)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

func dealDocuments(form *multipart.Form) (uploads.DealDocuments, error) {
	docs := uploads.DealDocuments{
		Land:   map[string][]clients.File{},
		Owners: map[int]map[string][]clients.File{},
	}
	if form == nil {
		return docs, nil
	}

	additional := map[string][]clients.File{}
	for field, fhs := range form.File {
		files, err := readFormFiles(fhs)
		if err != nil {
			return docs, err
		}
		switch {
		case field == fieldGeneral:
			docs.General = files
		case strings.HasPrefix(field, prefixLand):
			docs.Land[strings.TrimPrefix(field, prefixLand)] = files
		case strings.HasPrefix(field, prefixAdditional):
			additional[strings.TrimPrefix(field, prefixAdditional)] = files
		case strings.HasPrefix(field, prefixOwner):
			idx, docType, ok := strings.Cut(strings.TrimPrefix(field, prefixOwner), ".")
			i, err := strconv.Atoi(idx)
			if !ok || err != nil || i < 0 || docType == "" {
				return docs, errors.New("malformed owner document field " + field)
			}
			if docs.Owners[i] == nil {
				docs.Owners[i] = map[string][]clients.File{}
			}
			docs.Owners[i][docType] = files
		}
	}

	// Map order is random; groups keep the order of their names.
	names := make([]string, 0, len(additional))
	for name := range additional {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		docs.Additional = append(docs.Additional, uploads.AdditionalDocument{Name: name, Files: additional[name]})
	}
	return docs, nil
}

// Participants handles GET /bff/deals/:id/participants?strategy=
func (dc *DealController) Participants(ctx *gin.Context) {
	res, svcErr := dc.deals.Participants(ctx.Request.Context(), ctx.Param("id"), ctx.Query("strategy"))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// Targets handles GET /bff/deals/:id/targets?type=&party_type=&party_id=&party_name=
// The party_* parameters identify the row asking, which is left out of the
// options.
func (dc *DealController) Targets(ctx *gin.Context) {
	self := models.Participant{
		Type: models.PartyType(ctx.DefaultQuery("party_type", string(models.PartyTypeOwner))),
		ID:   models.ID(ctx.Query("party_id")),
		Name: ctx.Query("party_name"),
	}

	options, svcErr := dc.deals.Targets(ctx.Request.Context(), ctx.Param("id"), self, models.PartyType(ctx.Query("type")))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"options": options})
}

// List handles GET /bff/deals
func (dc *DealController) List(ctx *gin.Context) {
	deals, svcErr := dc.deals.List(ctx.Request.Context())
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, deals)
}

// Get handles GET /bff/deals/:id
func (dc *DealController) Get(ctx *gin.Context) {
	deal, svcErr := dc.deals.Get(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, deal)
}

// Update handles PUT /bff/deals/:id
func (dc *DealController) Update(ctx *gin.Context) {
	var in models.DealInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if svcErr := dc.deals.Update(ctx.Request.Context(), ctx.Param("id"), &in); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Deal updated"})
}

// Delete handles DELETE /bff/deals/:id
func (dc *DealController) Delete(ctx *gin.Context) {
	if svcErr := dc.deals.Delete(ctx.Request.Context(), ctx.Param("id")); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Deal deleted"})
}

// AddExpense handles POST /bff/deals/:id/expenses
func (dc *DealController) AddExpense(ctx *gin.Context) {
	var expense models.Expense
	if err := ctx.ShouldBindJSON(&expense); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if svcErr := dc.deals.AddExpense(ctx.Request.Context(), ctx.Param("id"), &expense); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Expense added"})
}
