package handlers

import (
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/servicelink/admin-service/internal/api/dto"
	"github.com/servicelink/admin-service/internal/config"
	"github.com/servicelink/admin-service/internal/domain"
	"github.com/servicelink/admin-service/internal/service"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

const (
	categoryImageField = "categoryImage"
	categorySubdir     = "category"
)

var allowedImageExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
}

// CategoriesHandler serves category management and image upload.
type CategoriesHandler struct {
	categories *service.CategoryService
	uploadDir  string
	maxBytes   int64
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categories *service.CategoryService, cfg config.UploadConfig) *CategoriesHandler {
	return &CategoriesHandler{categories: categories, uploadDir: cfg.Dir, maxBytes: int64(cfg.MaxFileBytes)}
}

// Create handles POST /admin/category.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	form := readCategoryForm(c)
	if form.Name == nil {
		return apperrors.NewValidationError("invalid request data", map[string]any{"name": "this field is required"})
	}
	imageURL, err := h.saveImage(c)
	if err != nil {
		return err
	}

	category, err := h.categories.CreateCategory(c.UserContext(), *form.Name, form.Description, imageURL)
	if err != nil {
		h.discardImage(imageURL)
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": category})
}

// List handles GET /admin/category.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categories})
}

// Edit handles PATCH /admin/category/:categoryId.
func (h *CategoriesHandler) Edit(c *fiber.Ctx) error {
	form := readCategoryForm(c)
	imageURL, err := h.saveImage(c)
	if err != nil {
		return err
	}

	category, err := h.categories.EditCategory(c.UserContext(), c.Params("categoryId"), domain.CategoryPatch{
		Name:        form.Name,
		Description: form.Description,
		ImageURL:    imageURL,
	})
	if err != nil {
		h.discardImage(imageURL)
		return err
	}
	return c.JSON(fiber.Map{"data": category})
}

func readCategoryForm(c *fiber.Ctx) dto.CategoryForm {
	return dto.CategoryForm{
		Name:        optionalValue(c.FormValue("name")),
		Description: optionalValue(c.FormValue("description")),
	}
}

func optionalValue(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

// saveImage stores the uploaded image, if any, under <uploadDir>/category and
// returns its public URL.
func (h *CategoriesHandler) saveImage(c *fiber.Ctx) (*string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File[categoryImageField]
	if len(files) == 0 {
		return nil, nil
	}
	return h.store(c, files[0])
}

func (h *CategoriesHandler) store(c *fiber.Ctx, file *multipart.FileHeader) (*string, error) {
	if h.maxBytes > 0 && file.Size > h.maxBytes {
		return nil, apperrors.NewValidationError("image too large", map[string]any{categoryImageField: "file exceeds upload limit"})
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedImageExts[ext]; !ok {
		return nil, apperrors.NewValidationError("unsupported image type", map[string]any{categoryImageField: "must be png, jpg, gif or webp"})
	}

	dir := filepath.Join(h.uploadDir, categorySubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	name := uuid.NewString() + ext
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	url := "/uploads/" + categorySubdir + "/" + name
	return &url, nil
}

// discardImage removes an image stored for a request whose write was rejected.
func (h *CategoriesHandler) discardImage(url *string) {
	if url == nil {
		return
	}
	_ = os.Remove(filepath.Join(h.uploadDir, categorySubdir, path.Base(*url)))
}
