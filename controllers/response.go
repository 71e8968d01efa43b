package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/common/middleware"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/payments"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/gin-gonic/gin"
)

// maxUploadMemory bounds the multipart form kept in memory per request.
const maxUploadMemory = 32 << 20

// respondError writes a ServiceError. Local validation failures carry
// kind=validation so the front-end can show them inline; a 401 ends the
// session.
func respondError(c *gin.Context, svcErr *services.ServiceError) {
	switch svcErr.StatusCode {
	case http.StatusUnauthorized:
		middleware.AbortSessionExpired(c)
	case http.StatusUnprocessableEntity:
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "kind": "validation"})
	default:
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
	}
}

// respondSubmitError writes a classified payment submission error.
func respondSubmitError(c *gin.Context, err error) {
	var (
		ve  *payments.ValidationError
		am  *payments.PartyAmountMismatchError
		pm  *payments.PartyPercentageMismatchError
		he  *payments.HTTPError
		sub *payments.SubmissionError
	)
	switch {
	case errors.As(err, &ve):
		body := gin.H{"error": ve.Message, "kind": "validation", "field": ve.Field}
		if ve.Party > 0 {
			body["party"] = ve.Party
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case errors.As(err, &am):
		c.JSON(am.Status, gin.H{
			"error":          payments.CodePartyAmountMismatch,
			"message":        am.Error(),
			"payment_amount": am.PaymentAmount,
			"parties_total":  am.PartiesTotal,
		})
	case errors.As(err, &pm):
		c.JSON(pm.Status, gin.H{
			"error":            payments.CodePartyPercentageMismatch,
			"message":          pm.Error(),
			"total_percentage": pm.TotalPercentage,
		})
	case errors.As(err, &he):
		if he.Status == http.StatusUnauthorized {
			middleware.AbortSessionExpired(c)
			return
		}
		c.JSON(he.Status, gin.H{"error": he.Message, "message": he.Error()})
	case errors.As(err, &sub):
		c.JSON(http.StatusBadGateway, gin.H{"error": sub.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// readFormFile loads one uploaded part into memory.
func readFormFile(fh *multipart.FileHeader) (clients.File, error) {
	f, err := fh.Open()
	if err != nil {
		return clients.File{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return clients.File{}, err
	}
	return clients.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func readFormFiles(fhs []*multipart.FileHeader) ([]clients.File, error) {
	files := make([]clients.File, 0, len(fhs))
	for _, fh := range fhs {
		f, err := readFormFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func sendBlob(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
