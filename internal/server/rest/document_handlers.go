package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type uploadDocumentRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// handleUploadDocument registers the member's document and hands back a
// presigned PUT URL; the client uploads the content directly to object
// storage.
func (s *Server) handleUploadDocument(c *gin.Context) {
	var req uploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	doc, url, err := s.documents.CreateUploadURL(c.Request.Context(), c.Param("memberID"), req.Filename)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"filename":  doc.Filename,
		"uploadUrl": url,
	})
}

func (s *Server) handleDownloadDocument(c *gin.Context) {
	doc, url, err := s.documents.CreateDownloadURL(c.Request.Context(), c.Param("memberID"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename":    doc.Filename,
		"downloadUrl": url,
	})
}

func (s *Server) handleDeleteDocument(c *gin.Context) {
	if err := s.documents.DeleteDocument(c.Request.Context(), c.Param("memberID")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
