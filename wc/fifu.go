package wc

import (
	"context"
	"fmt"
	"net/http"
)

// AssignImage points a product's featured image at an externally hosted URL
// via the my-images/v1 endpoint. This is a separate call by necessity: the
// product create/update payload cannot carry an external image reference.
func (c *Client) AssignImage(ctx context.Context, productID int64, imageURL string) error {
	if imageURL == "" {
		return fmt.Errorf("assign image: empty image URL")
	}
	u := fmt.Sprintf("%s/wp-json/my-images/v1/set-url/%d", c.baseURL, productID)
	resp, err := c.do(ctx, http.MethodPost, u, authBasic, map[string]string{"image_url": imageURL})
	if err != nil {
		return fmt.Errorf("assign image for product %d: %w", productID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("assign image for product %d: %w", productID, httpError(resp))
	}
	return nil
}
