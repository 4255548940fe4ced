// search.go
package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/blevesearch/bleve/v2"
	"github.com/gofiber/fiber/v2"
)

var idx bleve.Index

// initializeProductIndex opens the Bleve index backing product search,
// creating a fresh one when it does not exist yet.
func initializeProductIndex(indexPath string) (bleve.Index, error) {
	log.Printf("INFO: Initializing product search index at %s", indexPath)
	index, err := bleve.Open(indexPath)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		log.Printf("INFO: Creating new product search index at '%s'...", indexPath)
		index, err = bleve.New(indexPath, bleve.NewIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create product search index: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("open product search index '%s': %w", indexPath, err)
	} else {
		log.Println("INFO: Opened existing product search index.")
	}
	return index, nil
}

// reindexProducts rebuilds the search index from the products table so
// the index never drifts from the file across restarts. Documents are
// keyed by product name, so duplicate rows collapse to one search hit.
func reindexProducts() error {
	if idx == nil {
		return nil
	}
	rows, err := productsTable.Load()
	if err != nil {
		return fmt.Errorf("load products for reindex: %w", err)
	}
	batch := idx.NewBatch()
	for _, row := range rows {
		p := productFromRow(row)
		if err := batch.Index(p.ProductName, p); err != nil {
			return fmt.Errorf("index product '%s': %w", p.ProductName, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return fmt.Errorf("apply product index batch: %w", err)
	}
	log.Printf("INFO: Indexed %d product row(s) for search", len(rows))
	return nil
}

func indexProduct(p Product) {
	if idx == nil {
		return
	}
	if err := idx.Index(p.ProductName, p); err != nil {
		log.Printf("WARN: Failed to index product '%s': %v", p.ProductName, err)
	}
}

func unindexProduct(name string) {
	if idx == nil {
		return
	}
	if err := idx.Delete(name); err != nil {
		log.Printf("WARN: Failed to remove product '%s' from index: %v", name, err)
	}
}

// GET /api/products/search?q=
func searchProductsHandler(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query parameter 'q' is required"})
	}
	if idx == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Search index unavailable"})
	}

	req := bleve.NewSearchRequest(bleve.NewQueryStringQuery(q))
	req.Size = 50
	res, err := idx.Search(req)
	if err != nil {
		log.Printf("ERROR: Product search for %q failed: %v", q, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Search failed"})
	}

	// The index only stores names; the table remains the source of
	// truth for the returned records.
	rows, err := productsTable.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load products for search results: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Search failed"})
	}
	byName := make(map[string]Product, len(rows))
	for _, row := range rows {
		p := productFromRow(row)
		if _, seen := byName[p.ProductName]; !seen {
			byName[p.ProductName] = p
		}
	}
	matches := make([]Product, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if p, ok := byName[hit.ID]; ok {
			matches = append(matches, p)
		}
	}
	return c.JSON(fiber.Map{"total": len(matches), "products": matches})
}
