package uploads

import (
	"fmt"
	"sort"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
)

// LabelGeneral is the document type of files not tied to a category.
const LabelGeneral = "general"

// LandDocumentTypes is the upload order of land document categories.
var LandDocumentTypes = []string{
	"extract",
	"property_card",
	"mutation_records",
	"survey_map",
	"demarcation_certificate",
	"development_plan",
	"encumbrance_certificate",
}

// OwnerDocumentTypes is the upload order of per-owner document categories.
var OwnerDocumentTypes = []string{
	"identity_proof",
	"address_proof",
	"photograph",
	"bank_details",
	"power_of_attorney",
	"past_sale_deeds",
	"noc_co_owners",
	"noc_society",
	"affidavit_no_dispute",
}

// AdditionalDocument is a user-named land document group.
type AdditionalDocument struct {
	Name  string
	Files []clients.File
}

// DealDocuments are the files submitted with a new deal. Owner documents
// are keyed by the zero-based owner index, then by document type.
type DealDocuments struct {
	General    []clients.File
	Land       map[string][]clients.File
	Additional []AdditionalDocument
	Owners     map[int]map[string][]clients.File
}

// Count returns the number of files across all groups.
func (d DealDocuments) Count() int {
	return len(PlanDealDocuments(d))
}

// GeneralNames lists the general file names sent with the deal itself.
func (d DealDocuments) GeneralNames() []string {
	names := make([]string, 0, len(d.General))
	for _, f := range d.General {
		names = append(names, f.Name)
	}
	return names
}

// PlanDealDocuments orders the files for upload: general files, then land
// documents by category with additional groups last, then owner documents
// labelled owner_{index}_{type}. Additional groups without a name are
// skipped.
func PlanDealDocuments(d DealDocuments) []Item {
	var plan []Item
	for _, f := range d.General {
		plan = append(plan, Item{Label: LabelGeneral, File: f})
	}

	for _, docType := range orderedKeys(d.Land, LandDocumentTypes) {
		for _, f := range d.Land[docType] {
			plan = append(plan, Item{Label: docType, File: f})
		}
	}
	for _, extra := range d.Additional {
		if extra.Name == "" {
			continue
		}
		for _, f := range extra.Files {
			plan = append(plan, Item{Label: extra.Name, File: f})
		}
	}

	owners := make([]int, 0, len(d.Owners))
	for i := range d.Owners {
		owners = append(owners, i)
	}
	sort.Ints(owners)
	for _, i := range owners {
		docs := d.Owners[i]
		for _, docType := range orderedKeys(docs, OwnerDocumentTypes) {
			for _, f := range docs[docType] {
				plan = append(plan, Item{Label: fmt.Sprintf("owner_%d_%s", i, docType), File: f})
			}
		}
	}
	return plan
}

// orderedKeys returns the keys of m in the given order, followed by any
// unknown keys sorted by name.
func orderedKeys(m map[string][]clients.File, order []string) []string {
	known := make(map[string]bool, len(order))
	keys := make([]string, 0, len(m))
	for _, k := range order {
		known[k] = true
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range m {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}
