package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	createmodels "io.globetrek.app/internal/models/create_journal"
	"io.globetrek.app/internal/workflow"
)

// CreateJournal handles submission of a new journal entry. The request is
// a multipart form with the text fields plus zero or more "photos" file
// parts. Photos are uploaded one at a time in form order; the entry record
// is only written once every upload succeeded.
func (h *JournalHandler) CreateJournal(c *gin.Context) {
	var req createmodels.CreateJournalRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Get UID from context (set by auth middleware)
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userUID, ok := uid.(string)
	if !ok || userUID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return
	}

	// Parse the trip date up front; an unparseable date is treated the
	// same as a missing one by the workflow
	var entryDate time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be in YYYY-MM-DD format"})
			return
		}
		entryDate = parsed
	}

	// Collect attachments in form order
	var files []workflow.File
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["photos"] {
			opened, err := header.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file: " + header.Filename})
				return
			}
			defer opened.Close()
			files = append(files, workflow.File{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        opened,
			})
		}
	}

	ctx := context.Background()

	identity := workflow.Identity{ID: userUID, Email: c.GetString("email")}
	input := workflow.SubmissionInput{
		Title:       req.Title,
		Location:    req.Location,
		Date:        entryDate,
		Description: req.Description,
		Mishaps:     req.Mishaps,
		Files:       files,
	}

	entry, err := h.submitter.Submit(ctx, identity, input)
	if err != nil {
		h.respondSubmissionError(c, err)
		return
	}

	response := createmodels.CreateJournalResponse{
		Journal: *entry,
		Message: "Journal entry created successfully",
	}

	c.JSON(http.StatusCreated, response)
}

// respondSubmissionError maps each workflow error to a distinct
// user-facing message and status code.
func (h *JournalHandler) respondSubmissionError(c *gin.Context, err error) {
	var validationErr *workflow.ValidationError
	var uploadErr *workflow.UploadError
	var persistErr *workflow.PersistError

	switch {
	case errors.Is(err, workflow.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(validationErr.Field), "field": validationErr.Field})
	case errors.As(err, &uploadErr):
		h.logError(c, err, "photo upload failed", "file_name", uploadErr.FileName)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload " + uploadErr.FileName})
	case errors.As(err, &persistErr):
		h.logError(c, err, "journal entry persist failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save journal entry"})
	default:
		h.logError(c, err, "journal submission failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create journal entry"})
	}
}

func validationMessage(field string) string {
	switch field {
	case "title":
		return "Title is required"
	case "location":
		return "Location is required"
	case "date":
		return "Date is required"
	case "description":
		return "Description is required"
	default:
		return "Missing required field"
	}
}
