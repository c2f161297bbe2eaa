package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hostify/hostify-api/internal/application/service"
	"github.com/hostify/hostify-api/internal/presentation/http/dto/response"
)

// DomainHandler handles domain availability HTTP requests
type DomainHandler struct {
	domainService *service.DomainService
}

// NewDomainHandler creates a new domain handler
func NewDomainHandler(domainService *service.DomainService) *DomainHandler {
	return &DomainHandler{domainService: domainService}
}

// Search handles the domain availability search
// @Summary Search Domains
// @Description Check a keyword's availability across the configured TLDs
// @Tags domains
// @Produce json
// @Param keyword query string true "Domain keyword or full domain"
// @Success 200 {object} response.APIResponse
// @Router /domains/search [get]
func (h *DomainHandler) Search(c *gin.Context) {
	results, err := h.domainService.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Domain search completed", results)
}
