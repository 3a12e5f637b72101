package admin

import (
	"github.com/devlegal/internal/http/response"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

// ListDocuments 上传目录文件列表
func (h *Handler) ListDocuments(c *gin.Context) {
	files, err := h.UploadService.ListDocuments()
	if err != nil {
		respondServiceError(c, err, "Failed to list documents")
		return
	}
	response.OK(c, gin.H{"files": files})
}

// UploadDocument 上传文档
func (h *Handler) UploadDocument(c *gin.Context) {
	stored, ok := h.receiveUpload(c, "document", service.UploadKindDocument)
	if !ok {
		return
	}
	response.OK(c, gin.H{"success": true, "file": stored})
}

// DeleteDocument 删除文档
func (h *Handler) DeleteDocument(c *gin.Context) {
	name := c.Param("filename")
	if err := h.UploadService.Delete(name); err != nil {
		respondServiceError(c, err, "Failed to delete document")
		return
	}
	requestLog(c).Infow("admin_document_deleted", "name", name)
	response.Success(c)
}
