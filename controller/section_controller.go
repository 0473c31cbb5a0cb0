package controller

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
)

type SectionController struct {
	DB *gorm.DB
}

func (sc *SectionController) List(c *fiber.Ctx) error {
	var sections []model.Section
	if err := sc.DB.Order(`"order" ASC`).Find(&sections).Error; err != nil {
		return fail(c, 500, "failed to fetch sections")
	}
	return c.JSON(fiber.Map{"success": true, "data": sections, "count": len(sections)})
}

func (sc *SectionController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, 400, "invalid id")
	}
	var section model.Section
	if err := sc.DB.First(&section, id).Error; err != nil {
		return fail(c, 404, "section not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": section})
}

func (sc *SectionController) Create(c *fiber.Ctx) error {
	var in model.Section
	if err := c.BodyParser(&in); err != nil {
		return fail(c, 400, "invalid payload")
	}
	if in.Title == "" {
		return fail(c, 400, "title is required")
	}
	if in.Slug == "" {
		in.Slug = slugify(in.Title)
	}

	now := time.Now()
	in.ID = 0
	in.CreatedAt = now
	in.UpdatedAt = now

	if err := sc.DB.Create(&in).Error; err != nil {
		return fail(c, 500, "failed to create section")
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "data": in})
}

func (sc *SectionController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, 400, "invalid id")
	}
	var section model.Section
	if err := sc.DB.First(&section, id).Error; err != nil {
		return fail(c, 404, "section not found")
	}

	var in model.Section
	if err := c.BodyParser(&in); err != nil {
		return fail(c, 400, "invalid payload")
	}
	if in.Title == "" {
		return fail(c, 400, "title is required")
	}

	section.Title = in.Title
	if in.Slug != "" {
		section.Slug = in.Slug
	}
	section.Description = in.Description
	section.Image = in.Image
	section.Order = in.Order
	section.UpdatedAt = time.Now()

	if err := sc.DB.Save(&section).Error; err != nil {
		return fail(c, 500, "failed to update section")
	}
	return c.JSON(fiber.Map{"success": true, "data": section})
}

func (sc *SectionController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, 400, "invalid id")
	}
	var section model.Section
	if err := sc.DB.First(&section, id).Error; err != nil {
		return fail(c, 404, "section not found")
	}
	if err := sc.DB.Delete(&section).Error; err != nil {
		return fail(c, 500, "failed to delete section")
	}
	return c.SendStatus(204)
}
