package handlers

import (
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/KevinKupervaser/demoflores/firebase"
	"github.com/KevinKupervaser/demoflores/models"
	"github.com/KevinKupervaser/demoflores/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB      *gorm.DB
	Storage firebase.StorageClient
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	var products []models.Product
	query := h.DB.Preload("Images")

	// Filter by category
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	// Search by title or description
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Order("title asc").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if err := h.DB.Preload("Images").Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// uploadImage validates and pushes one multipart file to the image host,
// returning the record to persist.
func (h *ProductHandler) uploadImage(fileHeader *multipart.FileHeader, isThumbnail bool) (*models.ProductImage, int, string) {
	if err := utils.ValidateFileUpload(fileHeader); err != nil {
		return nil, http.StatusBadRequest, err.Error()
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, http.StatusBadRequest, "Invalid image"
	}

	imageURL, err := h.Storage.UploadProductImage(
		file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
	)
	file.Close()

	if err != nil {
		return nil, http.StatusInternalServerError, "Image upload failed"
	}

	publicID, err := utils.ExtractObjectPath(imageURL)
	if err != nil {
		publicID = imageURL
	}

	return &models.ProductImage{
		URL:         imageURL,
		PublicID:    publicID,
		IsThumbnail: isThumbnail,
	}, 0, ""
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product

	product.Title = c.PostForm("title")
	if product.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	product.Description = c.PostForm("description")

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		return
	}
	product.Price = price

	product.Category = c.PostForm("category")
	if !models.IsValidCategory(product.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	product.Stock = c.DefaultPostForm("stock", "true") == "true"

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form"})
		return
	}

	thumbnails := form.File["thumbnail"]
	if len(thumbnails) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A thumbnail image is required"})
		return
	}

	if err := h.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	var productImages []models.ProductImage

	thumb, status, msg := h.uploadImage(thumbnails[0], true)
	if thumb == nil {
		c.JSON(status, gin.H{"error": msg})
		return
	}
	thumb.ProductID = product.ID
	productImages = append(productImages, *thumb)

	for _, fileHeader := range form.File["images"] {
		img, status, msg := h.uploadImage(fileHeader, false)
		if img == nil {
			c.JSON(status, gin.H{"error": msg})
			return
		}
		img.ProductID = product.ID
		productImages = append(productImages, *img)
	}

	if err := h.DB.Create(&productImages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product images"})
		return
	}

	h.DB.Preload("Images").First(&product, product.ID)
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if err := h.DB.Preload("Images").Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if title := c.PostForm("title"); title != "" {
		product.Title = title
	}
	if description, ok := c.GetPostForm("description"); ok {
		product.Description = description
	}
	if price := c.PostForm("price"); price != "" {
		parsed, err := strconv.ParseFloat(price, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		product.Price = parsed
	}
	if category := c.PostForm("category"); category != "" {
		if !models.IsValidCategory(category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		product.Category = category
	}
	if stock, ok := c.GetPostForm("stock"); ok {
		product.Stock = stock == "true"
	}

	form, err := c.MultipartForm()
	if err == nil {
		// Delete specified images (from the image host too)
		for _, imageID := range form.Value["delete_images"] {
			var productImage models.ProductImage
			if err := h.DB.Where("id = ? AND product_id = ?", imageID, product.ID).First(&productImage).Error; err == nil {
				if productImage.PublicID != "" {
					if err := h.Storage.DeleteFile(productImage.PublicID); err != nil {
						log.Println("Failed to delete image from storage:", err)
					}
				}
				h.DB.Delete(&productImage)
			}
		}

		// Replace the thumbnail if a new one was uploaded
		if thumbnails := form.File["thumbnail"]; len(thumbnails) > 0 {
			thumb, status, msg := h.uploadImage(thumbnails[0], true)
			if thumb == nil {
				c.JSON(status, gin.H{"error": msg})
				return
			}
			h.DB.Model(&models.ProductImage{}).
				Where("product_id = ?", product.ID).
				Update("is_thumbnail", false)
			thumb.ProductID = product.ID
			if err := h.DB.Create(thumb).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product images"})
				return
			}
		}

		// Append new gallery images
		if files := form.File["images"]; len(files) > 0 {
			var newProductImages []models.ProductImage
			for _, fileHeader := range files {
				img, status, msg := h.uploadImage(fileHeader, false)
				if img == nil {
					c.JSON(status, gin.H{"error": msg})
					return
				}
				img.ProductID = product.ID
				newProductImages = append(newProductImages, *img)
			}

			if err := h.DB.Create(&newProductImages).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product images"})
				return
			}
		}
	}

	if err := h.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	h.DB.Preload("Images").First(&product, product.ID)
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if err := h.DB.Preload("Images").First(&product, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	// Purge images from the image host before removing the records
	for _, productImage := range product.Images {
		if productImage.PublicID != "" {
			if err := h.Storage.DeleteFile(productImage.PublicID); err != nil {
				log.Printf("Failed to delete image %s from storage: %v", productImage.URL, err)
			} else {
				log.Printf("Deleted image from storage: %s", productImage.URL)
			}
		}

		if err := h.DB.Delete(&productImage).Error; err != nil {
			log.Printf("Failed to delete product image record %s: %v", productImage.ID, err)
		}
	}

	if err := h.DB.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *ProductHandler) GetProductsPaginated(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	var products []models.Product
	var total int64

	query := h.DB.Preload("Images")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+search+"%")
	}

	query.Model(&models.Product{}).Count(&total)
	query.Order("title asc").Offset(offset).Limit(limit).Find(&products)

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}
