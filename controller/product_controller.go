package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
	"github.com/a-nebula-dev/ProjectLaserBunny/search"
)

const productCacheTTL = 10 * time.Minute

type ProductController struct {
	DB     *gorm.DB
	Redis  *redis.Client  // optional read cache
	Search *search.Client // optional index
}

type productInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Stock       int              `json:"stock"`
	Weight      float64          `json:"weight"`
	CategoryID  *uint            `json:"category_id"`
	Image       string           `json:"image"`
	Images      model.StringList `json:"images"`
	Details     model.StringList `json:"details"`
}

func (pc *ProductController) List(c *fiber.Ctx) error {
	var products []model.Product
	if err := pc.DB.Order("created_at DESC").Find(&products).Error; err != nil {
		return fail(c, 500, "failed to fetch products")
	}
	return c.JSON(fiber.Map{"success": true, "data": products, "count": len(products)})
}

func (pc *ProductController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, 400, "invalid id")
	}

	key := fmt.Sprintf("product:%d", id)
	if pc.Redis != nil {
		if cached, err := pc.Redis.Get(c.Context(), key).Result(); err == nil {
			var p model.Product
			if json.Unmarshal([]byte(cached), &p) == nil {
				return c.JSON(fiber.Map{"success": true, "data": p})
			}
		}
	}

	var p model.Product
	if err := pc.DB.First(&p, id).Error; err != nil {
		return fail(c, 404, "product not found")
	}

	if pc.Redis != nil {
		if data, err := json.Marshal(p); err == nil {
			pc.Redis.Set(c.Context(), key, data, productCacheTTL)
		}
	}
	return c.JSON(fiber.Map{"success": true, "data": p})
}

func (pc *ProductController) Create(c *fiber.Ctx) error {
	var in productInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, 400, "invalid payload")
	}
	if in.Name == "" || in.Price <= 0 {
		return fail(c, 400, "name and price are required")
	}

	p := model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Weight:      in.Weight,
		Image:       in.Image,
		Images:      in.Images,
		Details:     in.Details,
	}
	if p.Image == "" && len(in.Images) > 0 {
		p.Image = in.Images[0]
	}
	if err := pc.applyCategory(&p, in.CategoryID); err != nil {
		return fail(c, 400, err.Error())
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := pc.DB.Create(&p).Error; err != nil {
		return fail(c, 500, "failed to create product")
	}

	pc.indexProduct(c, p)
	return c.Status(201).JSON(fiber.Map{"success": true, "data": p})
}

func (pc *ProductController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, 400, "invalid id")
	}

	var p model.Product
	if err := pc.DB.First(&p, id).Error; err != nil {
		return fail(c, 404, "product not found")
	}

	var in productInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, 400, "invalid payload")
	}
	if in.Name == "" || in.Price <= 0 {
		return fail(c, 400, "name and price are required")
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	p.Weight = in.Weight
	p.Image = in.Image
	p.Images = in.Images
	p.Details = in.Details
	if err := pc.applyCategory(&p, in.CategoryID); err != nil {
		return fail(c, 400, err.Error())
	}
	p.UpdatedAt = time.Now()

	if err := pc.DB.Save(&p).Error; err != nil {
		return fail(c, 500, "failed to update product")
	}

	pc.invalidate(c, p.ID)
	pc.indexProduct(c, p)
	return c.JSON(fiber.Map{"success": true, "data": p})
}

func (pc *ProductController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, 400, "invalid id")
	}

	var p model.Product
	if err := pc.DB.First(&p, id).Error; err != nil {
		return fail(c, 404, "product not found")
	}
	if err := pc.DB.Delete(&p).Error; err != nil {
		return fail(c, 500, "failed to delete product")
	}

	pc.invalidate(c, p.ID)
	if pc.Search != nil {
		if err := pc.Search.DeleteProduct(c.Context(), p.ID); err != nil {
			log.Printf("search deindex failed for product %d: %v", p.ID, err)
		}
	}
	return c.SendStatus(204)
}

func (pc *ProductController) SearchProducts(c *fiber.Ctx) error {
	if pc.Search == nil {
		return fail(c, 503, "search is not available")
	}
	query := c.Query("q")
	if query == "" {
		return fail(c, 400, "query parameter 'q' is required")
	}

	results, err := pc.Search.SearchProducts(c.Context(), query,
		c.Query("category"), c.Query("min_price"), c.Query("max_price"))
	if err != nil {
		log.Printf("search failed: %v", err)
		return fail(c, 500, "search failed")
	}
	return c.JSON(fiber.Map{"success": true, "data": results, "count": len(results)})
}

// applyCategory resolves the category reference and caches its display
// name on the product row. Renames do not cascade; the cached name
// refreshes on the next product write.
func (pc *ProductController) applyCategory(p *model.Product, categoryID *uint) error {
	if categoryID == nil {
		p.CategoryID = nil
		p.Category = ""
		return nil
	}
	var category model.Category
	if err := pc.DB.First(&category, *categoryID).Error; err != nil {
		return fmt.Errorf("category not found")
	}
	p.CategoryID = categoryID
	p.Category = category.Name
	return nil
}

func (pc *ProductController) invalidate(c *fiber.Ctx, id uint) {
	if pc.Redis != nil {
		pc.Redis.Del(c.Context(), fmt.Sprintf("product:%d", id))
	}
}

func (pc *ProductController) indexProduct(c *fiber.Ctx, p model.Product) {
	if pc.Search == nil {
		return
	}
	if err := pc.Search.IndexProduct(c.Context(), p); err != nil {
		log.Printf("search index failed for product %d: %v", p.ID, err)
	}
}
