package httpapi

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lotfi029/FreelancerAssignment/internal/server/services"
)

// ProductController serves the product catalog endpoints. All routes sit
// behind the guard middleware.
type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// Add creates a product from a multipart form; the image part is optional.
func (ctrl *ProductController) Add(c *gin.Context) {
	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		writeBindError(c, err)
		return
	}

	upload, closeUpload, err := optionalImage(c)
	if err != nil {
		writeBindError(c, err)
		return
	}
	if closeUpload != nil {
		defer closeUpload()
	}

	view, err := ctrl.products.Add(c.Request.Context(), currentUserID(c), productInput(&form), upload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (ctrl *ProductController) Update(c *gin.Context) {
	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		writeBindError(c, err)
		return
	}

	view, err := ctrl.products.Update(c.Request.Context(), currentUserID(c), c.Param("id"), productInput(&form))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (ctrl *ProductController) Delete(c *gin.Context) {
	if err := ctrl.products.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *ProductController) GetAll(c *gin.Context) {
	views, err := ctrl.products.GetAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (ctrl *ProductController) GetByID(c *gin.Context) {
	view, err := ctrl.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (ctrl *ProductController) GetByCategory(c *gin.Context) {
	views, err := ctrl.products.GetByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (ctrl *ProductController) Categories(c *gin.Context) {
	categories, err := ctrl.products.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// AddImage attaches an image to an existing product.
func (ctrl *ProductController) AddImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		writeBindError(c, err)
		return
	}

	upload, closeUpload, err := openUpload(header)
	if err != nil {
		writeBindError(c, err)
		return
	}
	defer closeUpload()

	view, err := ctrl.products.AddImage(c.Request.Context(), c.Param("id"), upload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Image redirects to a presigned download URL for the product's image.
func (ctrl *ProductController) Image(c *gin.Context) {
	url, err := ctrl.products.ImageURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func productInput(form *ProductForm) *services.ProductInput {
	return &services.ProductInput{
		Name:            form.Name,
		Category:        form.Category,
		Price:           form.Price,
		MinimumQuantity: form.MinimumQuantity,
		Discount:        form.Discount,
	}
}

// optionalImage returns the multipart image part when present, nil when the
// form has none.
func optionalImage(c *gin.Context) (*services.ImageUpload, func(), error) {
	header, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (*services.ImageUpload, func(), error) {
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	upload := &services.ImageUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Reader:   file,
	}
	return upload, func() { file.Close() }, nil
}
