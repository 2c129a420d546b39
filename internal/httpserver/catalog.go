package httpserver

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/upload"
	"github.com/Skotchmaster/storefront/internal/util"
)

type CatalogHTTP struct {
	Svc     *service.CatalogService
	Uploads *upload.Storage
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_product", "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(l, "create_product", validationMessage(err, "Required fields are missing"), err)
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return failed(l, "create_product", err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHTTP) UploadImages(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.upload")

	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(l, "upload_images", "No files uploaded", err)
	}
	files := form.File["images"]
	if len(files) == 0 {
		return badRequest(l, "upload_images", "No files uploaded", nil)
	}

	paths, err := h.Uploads.SaveAll(upload.BucketProducts, files)
	if err != nil {
		return failed(l, "upload_images", err)
	}

	l.Info("upload_images_success", "count", len(paths))
	return c.JSON(http.StatusOK, transport.UploadResult{ImageURLs: paths})
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	items, err := h.Svc.ListProducts(ctx)
	if err != nil {
		return failed(l, "list_products", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "get_product", "Invalid product ID", err)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return failed(l, "get_product", err)
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct accepts either JSON or a multipart form. Uploaded "images"
// files replace the product's image list.
func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "update_product", "Invalid product ID", err)
	}

	var (
		req   transport.PatchProductRequest
		files []*multipart.FileHeader
	)
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return badRequest(l, "update_product", "Invalid request body", err)
		}
		if req, err = patchFromForm(form); err != nil {
			return badRequest(l, "update_product", err.Error(), err)
		}
		files = form.File["images"]
	} else if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_product", "Invalid request body", err)
	}

	if err := c.Validate(&req); err != nil {
		return badRequest(l, "update_product", validationMessage(err, "Required fields are missing"), err)
	}

	if len(files) > 0 {
		paths, err := h.Uploads.SaveAll(upload.BucketProducts, files)
		if err != nil {
			return failed(l, "update_product", err)
		}
		req.Images = paths
	}

	product, err := h.Svc.PatchProduct(ctx, id, req)
	if err != nil {
		for _, p := range req.Images {
			_ = h.Uploads.Remove(p)
		}
		return failed(l, "update_product", err)
	}

	l.Info("update_product_success", "product_id", id)
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "delete_product", "Invalid product ID", err)
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return failed(l, "delete_product", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, messageBody{Message: "Product deleted"})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	res, err := h.Svc.Search(ctx, c.QueryParam("q"), from, limit)
	if err != nil {
		return failed(l, "search_products", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CatalogHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	items, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return failed(l, "list_categories", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_category", "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(l, "create_category", validationMessage(err, "Title is required"), err)
	}

	cat, err := h.Svc.CreateCategory(ctx, req.Title)
	if err != nil {
		return failed(l, "create_category", err)
	}

	l.Info("create_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (h *CatalogHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "get_category", "Invalid category ID", err)
	}

	cat, err := h.Svc.GetCategory(ctx, id)
	if err != nil {
		return failed(l, "get_category", err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHTTP) CategoryProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.products")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "category_products", "Invalid category ID", err)
	}

	items, err := h.Svc.CategoryProducts(ctx, id)
	if err != nil {
		return failed(l, "category_products", err)
	}
	return c.JSON(http.StatusOK, items)
}
