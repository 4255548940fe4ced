// products.go
package main

import (
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// GET /api/products
// Columnar response: one slice per column, index-aligned. The POS
// frontend consumes exactly this shape.
func getProductsHandler(c *fiber.Ctx) error {
	rows, err := productsTable.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve products"})
	}
	names := make([]string, 0, len(rows))
	images := make([]string, 0, len(rows))
	categories := make([]string, 0, len(rows))
	prices := make([]float64, 0, len(rows))
	quantities := make([]int, 0, len(rows))
	for _, row := range rows {
		p := productFromRow(row)
		names = append(names, p.ProductName)
		images = append(images, p.ImageAddress)
		categories = append(categories, p.ProductCategory)
		prices = append(prices, p.ProductPrice)
		quantities = append(quantities, p.ProductQuantity)
	}
	return c.JSON(fiber.Map{
		"product":  names,
		"img_add":  images,
		"category": categories,
		"price":    prices,
		"quantity": quantities,
	})
}

// POST /api/add_product
// No duplicate-name check here, unlike employees: two products with
// the same name are two rows.
func addProductHandler(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}
	if p.ProductName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "product_name is required"})
	}
	if p.ProductPrice < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "product_price cannot be negative"})
	}
	if p.ProductQuantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "product_quantity cannot be negative"})
	}

	if err := productsTable.Append(p.row()); err != nil {
		log.Printf("ERROR: Failed to save product '%s': %v", p.ProductName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to save product"})
	}
	indexProduct(*p)
	log.Printf("INFO: Added product '%s'", p.ProductName)
	return c.JSON(fiber.Map{"success": true, "message": "Product added successfully!"})
}

// DELETE /api/products/:product_name
// An absent name is not an error: the handler answers 200 with a
// "not found" message and leaves the table alone. A present name has
// ALL of its rows removed, not just the first.
func deleteProductHandler(c *fiber.Ctx) error {
	name := c.Params("product_name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	rows, err := productsTable.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete product"})
	}
	kept := make([][]string, 0, len(rows))
	removed := 0
	for _, row := range rows {
		if row[0] == name {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	if removed == 0 {
		return c.JSON(fiber.Map{"message": "Product not found"})
	}
	if err := productsTable.Save(kept); err != nil {
		log.Printf("ERROR: Failed to save products after deleting '%s': %v", name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete product"})
	}
	unindexProduct(name)
	log.Printf("INFO: Deleted product '%s' (%d row(s) removed)", name, removed)
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
