package billingserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/adapters/http/mapper"
	catalogtypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/application/types"
	catalogports "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/ports"
)

// MaxImageSize bounds product image uploads.
const MaxImageSize = 5 << 20

// ProductAPI serves the owner's catalog.
type ProductAPI struct {
	service catalogports.Service
}

// NewProductAPI creates a ProductAPI backed by the catalog service.
func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Get /products
// Lists the owner's products, newest first
func (api *ProductAPI) ListProducts(c *gin.Context) {
	products, err := api.service.List(c.Request.Context(), ownerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromProjections(products))
}

// Post /products
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload cataloghttpmapper.ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), ownerID(c), cataloghttpmapper.ToProductInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromProjection(created))
}

// Put /products/:id
// Overwrites only the supplied fields
func (api *ProductAPI) UpdateProduct(c *gin.Context) {
	var payload cataloghttpmapper.ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), ownerID(c), c.Param("id"), cataloghttpmapper.ToProductInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromProjection(updated))
}

// Delete /products/:id
func (api *ProductAPI) DeleteProduct(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Post /products/:id/image
// Uploads a product image (multipart field "file")
func (api *ProductAPI) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if file.Size > MaxImageSize {
		respondBadRequest(c, fmt.Sprintf("image exceeds %d bytes", MaxImageSize))
		return
	}
	body, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	defer body.Close()

	input := catalogtypes.UploadImageInput{
		OwnerID:     ownerID(c),
		ProductID:   c.Param("id"),
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Body:        body,
	}
	updated, err := api.service.UploadImage(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromProjection(updated))
}
