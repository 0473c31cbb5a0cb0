package controller

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
)

type CategoryController struct {
	DB *gorm.DB
}

func (cc *CategoryController) List(c *fiber.Ctx) error {
	var categories []model.Category
	if err := cc.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return fail(c, 500, "failed to fetch categories")
	}
	return c.JSON(fiber.Map{"success": true, "data": categories, "count": len(categories)})
}

func (cc *CategoryController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, 400, "invalid id")
	}
	var category model.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		return fail(c, 404, "category not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": category})
}

func (cc *CategoryController) Create(c *fiber.Ctx) error {
	var in model.Category
	if err := c.BodyParser(&in); err != nil {
		return fail(c, 400, "invalid payload")
	}
	if in.Name == "" {
		return fail(c, 400, "name is required")
	}
	if in.Slug == "" {
		in.Slug = slugify(in.Name)
	}

	now := time.Now()
	in.ID = 0
	in.CreatedAt = now
	in.UpdatedAt = now

	if err := cc.DB.Create(&in).Error; err != nil {
		return fail(c, 500, "failed to create category")
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "data": in})
}

func (cc *CategoryController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, 400, "invalid id")
	}
	var category model.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		return fail(c, 404, "category not found")
	}

	var in model.Category
	if err := c.BodyParser(&in); err != nil {
		return fail(c, 400, "invalid payload")
	}
	if in.Name == "" {
		return fail(c, 400, "name is required")
	}

	category.Name = in.Name
	if in.Slug != "" {
		category.Slug = in.Slug
	}
	category.Description = in.Description
	category.UpdatedAt = time.Now()

	if err := cc.DB.Save(&category).Error; err != nil {
		return fail(c, 500, "failed to update category")
	}
	return c.JSON(fiber.Map{"success": true, "data": category})
}

func (cc *CategoryController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, 400, "invalid id")
	}
	var category model.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		return fail(c, 404, "category not found")
	}
	if err := cc.DB.Delete(&category).Error; err != nil {
		return fail(c, 500, "failed to delete category")
	}
	return c.SendStatus(204)
}
