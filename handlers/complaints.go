// Package handlers contains the gin handlers for the complaint API.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"civicsense/auth"
	"civicsense/db"
	"civicsense/triage"
	"civicsense/types"
)

// CreateComplaint accepts a multipart submission (text, optional location,
// coordinates and image) and runs it through the triage pipeline.
func CreateComplaint(c *gin.Context, pipeline *triage.Pipeline) {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	sub := triage.Submission{
		Text:     c.PostForm("text"),
		Location: c.PostForm("location"),
		AudioURL: c.PostForm("audio_url"),
		UserID:   principal.Subject,
	}

	if coords, err := parseCoordinates(c.PostForm("lat"), c.PostForm("lng")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	} else if coords != nil {
		sub.Coordinates = coords
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded image"})
			return
		}
		defer file.Close()
		sub.Image = file
		sub.ImageURL = "uploads/" + fileHeader.Filename
	}

	complaint, err := pipeline.Process(c.Request.Context(), sub)
	if err != nil {
		if errors.Is(err, triage.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing complaint: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, complaint)
}

func parseCoordinates(latStr, lngStr string) (*types.Coordinates, error) {
	if latStr == "" && lngStr == "" {
		return nil, nil
	}
	if latStr == "" || lngStr == "" {
		return nil, errors.New("both lat and lng are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lat: %q", latStr)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lng: %q", lngStr)
	}
	return &types.Coordinates{Lat: lat, Lng: lng}, nil
}

// ListComplaints returns complaints visible to the caller, newest first.
// Citizens see their own, officers their department's, admins everything.
func ListComplaints(c *gin.Context, store *db.Store) {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	filter := db.ComplaintFilter{
		Department: c.Query("department"),
		Urgency:    types.Urgency(c.Query("urgency")),
		Status:     types.Status(c.Query("status")),
	}

	switch principal.Role {
	case types.RoleCitizen:
		filter.UserID = principal.Subject
	case types.RoleOfficer:
		if principal.Department != "" {
			filter.Department = principal.Department
		}
	}

	complaints, err := store.QueryComplaints(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, complaints)
}

// GetComplaint fetches one complaint by ID.
func GetComplaint(c *gin.Context, store *db.Store) {
	complaint, err := store.GetComplaint(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, complaint)
}

// complaintUpdate is the officer-facing PATCH body.
type complaintUpdate struct {
	Status             types.Status `json:"status"`
	Department         string       `json:"department"`
	RejectionReason    string       `json:"rejection_reason"`
	ResolutionNote     string       `json:"resolution_note"`
	ResolutionImageURL string       `json:"resolution_image_url"`
}

// UpdateComplaint applies status/routing changes. Officers and admins only;
// status changes must follow the submitted → assigned → in_progress →
// resolved/rejected chain.
func UpdateComplaint(c *gin.Context, store *db.Store) {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	if principal.Role != types.RoleOfficer && principal.Role != types.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only officers and admins can update"})
		return
	}

	var body complaintUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	existing, err := store.GetComplaint(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var updates []firestore.Update
	if body.Status != "" {
		if !types.CanTransition(existing.Status, body.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("cannot move complaint from %s to %s", existing.Status, body.Status),
			})
			return
		}
		updates = append(updates, firestore.Update{Path: "status", Value: string(body.Status)})
	}
	if body.Department != "" {
		updates = append(updates, firestore.Update{Path: "department", Value: body.Department})
	}
	if body.RejectionReason != "" {
		updates = append(updates, firestore.Update{Path: "rejectionReason", Value: body.RejectionReason})
	}
	if body.ResolutionNote != "" {
		updates = append(updates, firestore.Update{Path: "resolutionNote", Value: body.ResolutionNote})
	}
	if body.ResolutionImageURL != "" {
		updates = append(updates, firestore.Update{Path: "resolutionImageUrl", Value: body.ResolutionImageURL})
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}

	if err := store.UpdateComplaint(c.Request.Context(), id, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	updated, err := store.GetComplaint(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}
