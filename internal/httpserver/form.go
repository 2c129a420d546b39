package httpserver

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

// patchFromForm reads the text fields of a multipart product update.
// Fields that are not present stay nil.
func patchFromForm(form *multipart.Form) (transport.PatchProductRequest, error) {
	var req transport.PatchProductRequest
	if form == nil {
		return req, nil
	}

	str := func(key string) *string {
		if vs, ok := form.Value[key]; ok && len(vs) > 0 {
			v := vs[0]
			return &v
		}
		return nil
	}

	req.Title = str("title")
	req.Description = str("description")
	req.Category = str("category")
	req.Type = str("type")
	req.Size = str("size")
	req.Stock = str("stock")

	var err error
	if req.Price, err = floatField(str("price"), "price"); err != nil {
		return req, err
	}
	if req.PrevPrice, err = floatField(str("prevprice"), "prevprice"); err != nil {
		return req, err
	}
	if req.Discount, err = floatField(str("discount"), "discount"); err != nil {
		return req, err
	}
	if v := str("qty"); v != nil {
		n, err := strconv.Atoi(strings.TrimSpace(*v))
		if err != nil {
			return req, fmt.Errorf("invalid qty: %w", err)
		}
		req.Qty = &n
	}

	// sizes is either repeated or a single JSON array
	if vs, ok := form.Value["sizes"]; ok {
		if len(vs) == 1 && strings.HasPrefix(strings.TrimSpace(vs[0]), "[") {
			if err := json.Unmarshal([]byte(vs[0]), &req.Sizes); err != nil {
				return req, fmt.Errorf("invalid sizes: %w", err)
			}
		} else {
			req.Sizes = append([]string{}, vs...)
		}
	}

	if v := str("rating"); v != nil {
		var r models.Rating
		if err := json.Unmarshal([]byte(*v), &r); err != nil {
			return req, fmt.Errorf("invalid rating: %w", err)
		}
		req.Rating = &r
	}

	return req, nil
}

func floatField(v *string, name string) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*v), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &f, nil
}
