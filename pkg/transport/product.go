package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/spf13/cast"

	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
	"storefront/pkg/infrastructure/upload"
)

const maxUploadMemory = 10 << 20

// productForm parses a multipart product form. The returned upload, when
// present, is removed by Close unless the caller keeps it.
func (h *handler) productForm(r *http.Request) (service.ProductInput, *upload.File, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && err != http.ErrNotMultipart {
		return service.ProductInput{}, nil, model.NewValidationError(msgInvalidBody)
	}

	var photo *upload.File
	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["photo"]; len(files) > 0 {
			saved, err := h.Uploads.Save(files[0])
			if err != nil {
				return service.ProductInput{}, nil, err
			}
			photo = saved
		}
	}

	return service.ProductInput{
		Name:        r.FormValue("name"),
		Price:       cast.ToFloat64(r.FormValue("price")),
		Description: r.FormValue("description"),
		Stock:       cast.ToInt(r.FormValue("stock")),
		Category:    r.FormValue("category"),
		Photo:       photo.PathOrEmpty(),
	}, photo, nil
}

func (h *handler) createProduct(w http.ResponseWriter, r *http.Request) error {
	input, photo, err := h.productForm(r)
	if err != nil {
		return err
	}
	defer photo.Close()

	if _, err := h.Products.CreateProduct(r.Context(), input); err != nil {
		return err
	}
	photo.Keep()

	respond(w, http.StatusCreated, envelope{"message": "Product created successfully"})
	return nil
}

func (h *handler) latestProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := h.Products.LatestProducts(r.Context())
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"products": products})
	return nil
}

func (h *handler) categories(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.Products.Categories(r.Context())
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"categories": categories})
	return nil
}

func (h *handler) adminProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := h.Products.AdminProducts(r.Context())
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"products": products})
	return nil
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) error {
	product, err := h.Products.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"product": product})
	return nil
}

func (h *handler) updateProduct(w http.ResponseWriter, r *http.Request) error {
	input, photo, err := h.productForm(r)
	if err != nil {
		return err
	}
	defer photo.Close()

	if _, err := h.Products.UpdateProduct(r.Context(), mux.Vars(r)["id"], input); err != nil {
		return err
	}
	photo.Keep()

	respond(w, http.StatusOK, envelope{"message": "Product updated successfully"})
	return nil
}

func (h *handler) deleteProduct(w http.ResponseWriter, r *http.Request) error {
	if err := h.Products.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"message": "Product deleted successfully"})
	return nil
}

func (h *handler) searchProducts(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	result, err := h.Products.SearchProducts(r.Context(), service.SearchParams{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		MaxPrice: cast.ToFloat64(q.Get("price")),
		Sort:     q.Get("sort"),
		Page:     cast.ToInt(q.Get("page")),
	})
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{
		"products":      result.Products,
		"totalPage":     result.TotalPage,
		"currentPage":   result.CurrentPage,
		"totalProducts": result.TotalProducts,
	})
	return nil
}
