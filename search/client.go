package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
)

const productIndex = "products"

// Client indexes catalog products for the storefront search endpoint.
// Indexing is best-effort on product writes; the database stays the source
// of truth.
type Client struct {
	ES *elasticsearch.Client
}

func NewClient(url string) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
	})
	if err != nil {
		return nil, err
	}
	return &Client{ES: es}, nil
}

func (c *Client) IndexProduct(ctx context.Context, p model.Product) error {
	doc, err := json.Marshal(map[string]interface{}{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"stock":       p.Stock,
		"category":    p.Category,
		"category_id": p.CategoryID,
		"image":       p.Image,
	})
	if err != nil {
		return err
	}

	res, err := c.ES.Index(productIndex, bytes.NewReader(doc),
		c.ES.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		c.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to index product %d: %s", p.ID, res.Status())
	}
	return nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	res, err := c.ES.Delete(productIndex, strconv.FormatUint(uint64(id), 10),
		c.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	// a product that was never indexed is fine
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("failed to delete product %d: %s", id, res.Status())
	}
	return nil
}

// SearchProducts runs a multi_match over name/description with optional
// category and price filters, returning the raw document sources.
func (c *Client) SearchProducts(ctx context.Context, query, category, minPrice, maxPrice string) ([]map[string]interface{}, error) {
	must := []interface{}{
		map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "description"},
			},
		},
	}
	filter := []interface{}{}

	if category != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"category.keyword": category},
		})
	}

	priceRange := map[string]interface{}{}
	if minPrice != "" {
		priceRange["gte"] = minPrice
	}
	if maxPrice != "" {
		priceRange["lte"] = maxPrice
	}
	if len(priceRange) > 0 {
		filter = append(filter, map[string]interface{}{
			"range": map[string]interface{}{"price": priceRange},
		})
	}

	body, err := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	res, err := c.ES.Search(
		c.ES.Search.WithContext(ctx),
		c.ES.Search.WithIndex(productIndex),
		c.ES.Search.WithBody(bytes.NewReader(body)),
		c.ES.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search failed: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	results := make([]map[string]interface{}, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		results = append(results, hit.Source)
	}
	return results, nil
}
