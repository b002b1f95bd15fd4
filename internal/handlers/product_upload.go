package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

/*
=======================
  INPUT STRUCT
=======================
*/

// MultipartProductInput carries the parsed form with a Set flag per field, so
// partial updates only touch what the form actually sent.
type MultipartProductInput struct {
	Name                 string
	NameSet              bool
	Slug                 string
	SlugSet              bool
	CategoryID           string
	CategoryIDSet        bool
	Description          string
	DescriptionSet       bool
	Price                float64
	PriceSet             bool
	Stock                int
	StockSet             bool
	IsAvailable          bool
	IsAvailableSet       bool
	IsActive             bool
	IsActiveSet          bool
	ManufacturingDate    time.Time
	ManufacturingDateSet bool
	ExpiryDate           time.Time
	ExpiryDateSet        bool
	Image                *multipart.FileHeader
}

/*
=======================
  PARSER
=======================
*/

func parseMultipartProductRequest(c *gin.Context) (MultipartProductInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		log.Println("PARSE ERROR:", err)
		return MultipartProductInput{}, err
	}

	input := MultipartProductInput{}

	// ---- STRING FIELDS ----

	if value, ok := c.GetPostForm("name"); ok {
		input.Name = strings.TrimSpace(value)
		input.NameSet = true
	}

	if value, ok := c.GetPostForm("slug"); ok {
		input.Slug = strings.TrimSpace(value)
		input.SlugSet = true
	}

	if value, ok := c.GetPostForm("categoryId"); ok {
		input.CategoryID = strings.TrimSpace(value)
		input.CategoryIDSet = true
	}

	if value, ok := c.GetPostForm("description"); ok {
		input.Description = strings.TrimSpace(value)
		input.DescriptionSet = true
	}

	// ---- NUMBER FIELDS ----

	if value, ok := c.GetPostForm("price"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return MultipartProductInput{}, err
		}
		input.Price = parsed
		input.PriceSet = true
	}

	if value, ok := c.GetPostForm("stock"); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return MultipartProductInput{}, err
		}
		input.Stock = parsed
		input.StockSet = true
	}

	// ---- BOOL FIELDS ----

	if value, ok := c.GetPostForm("isAvailable"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return MultipartProductInput{}, err
		}
		input.IsAvailable = parsed
		input.IsAvailableSet = true
	}

	if value, ok := c.GetPostForm("isActive"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return MultipartProductInput{}, err
		}
		input.IsActive = parsed
		input.IsActiveSet = true
	}

	// ---- DATE FIELDS ----

	if value, ok := c.GetPostForm("manufacturingDate"); ok {
		parsed, err := parseDateValue(value)
		if err != nil {
			return MultipartProductInput{}, err
		}
		input.ManufacturingDate = parsed
		input.ManufacturingDateSet = true
	}

	if value, ok := c.GetPostForm("expiryDate"); ok {
		parsed, err := parseDateValue(value)
		if err != nil {
			return MultipartProductInput{}, err
		}
		input.ExpiryDate = parsed
		input.ExpiryDateSet = true
	}

	// ---- IMAGE FILE ----

	file, err := c.FormFile("image")
	if err == nil {
		input.Image = file
	} else if !errors.Is(err, http.ErrMissingFile) &&
		!strings.Contains(err.Error(), "no such file") {
		return MultipartProductInput{}, err
	}

	return input, nil
}

/*
=======================
  HELPERS
=======================
*/

func parseBoolValue(value string) (bool, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "on" {
		return true, nil
	}
	return strconv.ParseBool(value)
}

func parseDateValue(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}

func respondMultipartError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
