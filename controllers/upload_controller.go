package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	UploadSvc *services.UploadService
}

func NewUploadController(svc *services.UploadService) *UploadController {
	return &UploadController{UploadSvc: svc}
}

// UploadImages (POST /api/upload) takes multipart "files" parts.
func (ctrl *UploadController) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	uploaded, err := ctrl.UploadSvc.Save(c.Request.Context(), form.File["files"])
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoFiles),
			errors.Is(err, services.ErrUnsupportedFileType),
			errors.Is(err, services.ErrFileTooLarge):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		default:
			log.Printf("❌ Upload error: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "Upload failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"files":   uploaded,
		"message": fmt.Sprintf("Successfully uploaded %d file(s)", len(uploaded)),
	})
}
